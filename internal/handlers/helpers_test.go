package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalDate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("empty means no filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		date, ok := optionalDate(c, "start_date", "")
		assert.True(t, ok)
		assert.Nil(t, date)
		assert.False(t, c.Writer.Written())
	})

	t.Run("valid date", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		date, ok := optionalDate(c, "start_date", "2024-02-29")
		require.True(t, ok)
		require.NotNil(t, date)
		assert.Equal(t, "2024-02-29", date.Format("2006-01-02"))
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		date, ok := optionalDate(c, "end_date", "2024-13-01")
		assert.False(t, ok)
		assert.Nil(t, date)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Code    string `json:"code"`
			Details []struct {
				Field string `json:"field"`
				Tag   string `json:"tag"`
			} `json:"details"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Details, 1)
		assert.Equal(t, "end_date", resp.Details[0].Field)
		assert.Equal(t, "isodate", resp.Details[0].Tag)
	})
}
