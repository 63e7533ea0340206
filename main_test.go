package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/treeder/gotils"
)

// codedErr carries an HTTP status the way gotils coded errors do.
type codedErr struct {
	code int
}

func (e *codedErr) Error() string { return "coded failure" }
func (e *codedErr) Code() int     { return e.code }

var _ gotils.HTTPError = new(codedErr)

func TestErrorHandlerStatusCodes(t *testing.T) {
	tests := []struct {
		err error
		exp int
	}{
		// an error carrying its own code keeps it
		{&codedErr{code: http.StatusTeapot}, http.StatusTeapot},
		// a store miss surfaces as 404
		{gotils.ErrNotFound, http.StatusNotFound},
		// everything else is a 500
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for i, test := range tests {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		errorHandler(func(w http.ResponseWriter, r *http.Request) error {
			return test.err
		})(w, r)
		if w.Code != test.exp {
			t.Errorf("test %v | expected status %v got %v", i, test.exp, w.Code)
		}
	}
}

func TestErrorHandlerSuccessWritesNothing(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	errorHandler(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		return nil
	})(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %v", w.Code)
	}
}
