// Package export renders extracted line items as XLSX workbooks and CSV.
package export
