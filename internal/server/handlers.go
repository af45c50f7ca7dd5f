package server

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"row-hasher/internal/digest"
	"row-hasher/internal/encode"
	"row-hasher/internal/engine"
	"row-hasher/internal/mapping"
	"row-hasher/internal/normalize"
	"row-hasher/internal/pipeline"
	"row-hasher/internal/record"
)

// HashRequest is the body of POST /v1/hash.
type HashRequest struct {
	Mapping string `json:"mapping"`
	// Algorithm defaults to MD5, Encoding to PLAIN.
	Algorithm       string           `json:"algorithm"`
	Encoding        string           `json:"encoding"`
	CaseSensitive   bool             `json:"case_sensitive"`
	IgnoreMissing   bool             `json:"ignore_missing"`
	NullPlaceholder string           `json:"null_placeholder"`
	Rows            []map[string]any `json:"rows"`
}

// HashResponse is the body returned by POST /v1/hash.
type HashResponse struct {
	Rows     []map[string]any `json:"rows"`
	Written  []string         `json:"written"`
	Warnings []string         `json:"warnings,omitempty"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) algorithms(c echo.Context) error {
	var algs []string

	for _, a := range digest.Algorithms() {
		if digest.Available(a) {
			algs = append(algs, a.String())
		}
	}

	var encs []string
	for _, e := range encode.Encodings() {
		encs = append(encs, e.String())
	}

	return c.JSON(http.StatusOK, map[string][]string{
		"algorithms": algs,
		"encodings":  encs,
	})
}

func (s *Server) hash(c echo.Context) error {
	var req HashRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if len(req.Rows) > s.maxRows {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("at most %d rows per request", s.maxRows))
	}

	alg, enc, err := req.digestSettings()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	e, err := engine.New(engine.Options{
		Normalize:            normalize.Config{NullPlaceholder: req.NullPlaceholder},
		Mapping:              req.Mapping,
		CaseSensitive:        req.CaseSensitive,
		IgnoreMissingColumns: req.IgnoreMissing,
		Logger:               s.logger,
	})
	if err != nil {
		return httpError(err)
	}

	// Rows may carry different keys; all are laid out by the sorted union.
	keys := make(map[string]struct{})
	for _, row := range req.Rows {
		for k := range row {
			keys[k] = struct{}{}
		}
	}

	inHeader := record.NewHeader(slices.Sorted(maps.Keys(keys))...)
	outHeader := inHeader.Extend(e.Configuration().OutputNames()...)

	resp := HashResponse{Rows: make([]map[string]any, 0, len(req.Rows))}

	for i, row := range req.Rows {
		in := &pipeline.Input{
			Line:    int64(i + 1),
			Source:  "request",
			Columns: record.FromMapWithHeader(inHeader, row),
		}

		out, err := pipeline.NewOutput(outHeader, in.Columns)
		if err != nil {
			return httpError(err)
		}

		written, err := e.ProcessRow(in, out, alg, enc)
		if err != nil {
			return httpError(fmt.Errorf("row %d: %w", i+1, err))
		}

		if resp.Written == nil {
			resp.Written = written
		}

		resp.Rows = append(resp.Rows, out.Columns.Map())
	}

	if resp.Written == nil {
		resp.Written = []string{}
	}

	for _, w := range e.Diagnostics().Warnings {
		resp.Warnings = append(resp.Warnings, w.String())
	}

	return c.JSON(http.StatusOK, resp)
}

// digestSettings parses the algorithm and encoding. Empty names take the
// engine defaults; unknown names are rejected.
func (r *HashRequest) digestSettings() (digest.Algorithm, encode.Encoding, error) {
	alg, enc := digest.MD5, encode.Plain

	if r.Algorithm != "" {
		var ok bool
		if alg, ok = digest.LookupAlgorithm(r.Algorithm); !ok {
			return alg, enc, fmt.Errorf("unknown algorithm %q", r.Algorithm)
		}
	}

	if r.Encoding != "" {
		var ok bool
		if enc, ok = encode.LookupEncoding(r.Encoding); !ok {
			return alg, enc, fmt.Errorf("unknown encoding %q", r.Encoding)
		}
	}

	return alg, enc, nil
}

// httpError maps engine errors caused by the request to 400.
func httpError(err error) error {
	switch {
	case errors.Is(err, mapping.ErrConfigSyntax),
		errors.Is(err, engine.ErrUnresolvedField),
		errors.Is(err, digest.ErrAlgorithmUnavailable):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
}
