package handler

import (
	"net/url"
	"strconv"

	"github.com/qaforum/qaforum-go/internal/apperr"
	"github.com/qaforum/qaforum-go/internal/model"
)

var (
	ErrMissingParameters = apperr.New(apperr.KindValidation, "missing parameter")
	ErrNegativeParameter = apperr.New(apperr.KindValidation, "limit and offset must not be negative")
)

// parsePagination reads ?limit=&offset=. Without any query parameter every
// question is returned; otherwise both are required.
func parsePagination(query url.Values) (model.Pagination, error) {
	if len(query) == 0 {
		return model.Pagination{}, nil
	}
	if !query.Has("limit") || !query.Has("offset") {
		return model.Pagination{}, ErrMissingParameters
	}

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil {
		return model.Pagination{}, parseError(err)
	}
	offset, err := strconv.Atoi(query.Get("offset"))
	if err != nil {
		return model.Pagination{}, parseError(err)
	}
	if limit < 0 || offset < 0 {
		return model.Pagination{}, ErrNegativeParameter
	}

	return model.Pagination{Limit: &limit, Offset: offset}, nil
}

func parseError(err error) error {
	if numErr, ok := err.(*strconv.NumError); ok {
		err = numErr.Err
	}
	return apperr.New(apperr.KindValidation, "cannot parse parameter: "+err.Error())
}
