package commands

const (
	_etc = "/usr/local/etc/com.github.twystd/sheets-merge"
	_var = "/usr/local/var/com.github.twystd/sheets-merge"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
