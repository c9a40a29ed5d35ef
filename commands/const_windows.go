package commands

const (
	_etc = `C:\ProgramData\sheets-merge`
	_var = `C:\ProgramData\sheets-merge\var`

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + `\.google\credentials.json`
)
