package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/trueconf-console/internal/model"
	"github.com/dtroode/trueconf-console/internal/spreadsheet"
)

// errorText is the operator-facing text of err.
func errorText(err error) string {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}

	var dErr *model.DirectoryError
	if errors.As(err, &dErr) {
		return dErr.Error()
	}

	return err.Error()
}

// reviewErrorText maps a spreadsheet parse failure to the notice shown on the upload tab.
func reviewErrorText(err error) string {
	var rowErr *spreadsheet.RowError
	switch {
	case errors.As(err, &rowErr):
		return rowErr.Error()
	case errors.Is(err, spreadsheet.ErrInvalidHeader):
		return "The spreadsheet header does not match. Please use the provided template."
	default:
		return "Failed to process the spreadsheet. Make sure its format is correct."
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
