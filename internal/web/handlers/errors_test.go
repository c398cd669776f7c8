package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"ytchapters/internal/models"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{models.ErrInvalidSourceURL, http.StatusBadRequest},
		{fmt.Errorf("影片 x: %w", models.ErrCaptionsUnavailable), http.StatusNotFound},
		{fmt.Errorf("字幕 y: %w", models.ErrNotFound), http.StatusNotFound},
		{models.ErrUnauthenticated, http.StatusUnauthorized},
		{fmt.Errorf("生成失敗: %w", models.ErrCollaboratorUnavailable), http.StatusBadGateway},
		{&models.MalformedOutputError{Raw: "not json", Err: errors.New("decode")}, http.StatusBadGateway},
		{errors.New("其他未分類錯誤"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, c.err)
		assert.Equal(t, c.status, rec.Code, "error: %v", c.err)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	}
}
