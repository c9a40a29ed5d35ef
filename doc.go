// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package sheets-merge merges the rows of two or more Google Sheets spreadsheets into a single spreadsheet.

A row from the second and subsequent spreadsheets is only included in the merged spreadsheet if the value in
the merge column has not already been seen. The merged spreadsheet is created with a service account (or an
authorised Google account) and ownership is then transferred to the user entered at the final prompt.

sheets-merge supports the following commands:

  - merge, to interactively merge spreadsheets (the default command)
  - authorise, to authorise sheets-merge to access Google Sheets and Google Drive with an OAuth client
  - get, to download a Google Sheets worksheet as a TSV or XLSX file
  - put, to store a TSV or XLSX file to a Google Sheets worksheet
  - version, to display the current version
*/
package sheets
