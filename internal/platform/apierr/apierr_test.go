package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", New(http.StatusServiceUnavailable, "data_source_unavailable", errors.New("dial tcp")))
	status, code := From(wrapped)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "data_source_unavailable", code)
	assert.Equal(t, "load: dial tcp", wrapped.Error())

	status, code = From(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", code)

	status, code = From(&Error{})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", code)
	assert.Equal(t, "api error", (&Error{}).Error())
}
