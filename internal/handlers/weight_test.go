package handlers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type weightRecordResponse struct {
	ID         uint64  `json:"id"`
	Weight     float64 `json:"weight"`
	RecordDate string  `json:"record_date"`
	WeekNum    string  `json:"week_num"`
}

func addWeight(t *testing.T, env *testEnv, token, date string, weight float64) weightRecordResponse {
	t.Helper()

	w := env.doJSON(http.MethodPost, "/api/v1/weight/record/add", token, gin.H{
		"record_date": date,
		"weight":      weight,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var record weightRecordResponse
	decode(t, w, &record)
	return record
}

func TestWeight_AddAndDuplicate(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin("alice")

	record := addWeight(t, env, token, "2024-01-01", 70.5)
	assert.Equal(t, "202401", record.WeekNum)
	assert.Equal(t, "2024-01-01", record.RecordDate)

	w := env.doJSON(http.MethodPost, "/api/v1/weight/record/add", token, gin.H{
		"record_date": "2024-01-01",
		"weight":      71.0,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	decode(t, w, &resp)
	assert.Equal(t, "CONFLICT", resp["code"])
}

func TestWeight_AddValidation(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin("alice")

	for _, body := range []gin.H{
		{"record_date": "2024-01-01"},
		{"record_date": "2024-01-01", "weight": 0},
		{"record_date": "2024-01-01", "weight": 501},
	} {
		w := env.doJSON(http.MethodPost, "/api/v1/weight/record/add", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestWeight_UpdateRejectsNullWeight(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin("alice")
	record := addWeight(t, env, token, "2024-01-01", 70.5)

	path := "/api/v1/weight/record/update/" + itoa(record.ID)
	w := env.doJSON(http.MethodPut, path, token, `{"weight": null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.doJSON(http.MethodPut, path, token, `{"remark": null, "weight": 69.9}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated weightRecordResponse
	decode(t, w, &updated)
	assert.Equal(t, 69.9, updated.Weight)
	assert.Equal(t, "2024-01-01", updated.RecordDate)
}

func TestWeight_WeekStats(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin("alice")
	addWeight(t, env, token, "2024-01-01", 70.5)
	addWeight(t, env, token, "2024-01-02", 71.0)

	w := env.doJSON(http.MethodGet, "/api/v1/weight/record/week?week_num=202401", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats struct {
		WeekNum   string  `json:"week_num"`
		AvgWeight float64 `json:"avg_weight"`
		MaxWeight float64 `json:"max_weight"`
		MinWeight float64 `json:"min_weight"`
	}
	decode(t, w, &stats)
	assert.Equal(t, "202401", stats.WeekNum)
	assert.Equal(t, 70.8, stats.AvgWeight)
	assert.Equal(t, 71.0, stats.MaxWeight)
	assert.Equal(t, 70.5, stats.MinWeight)

	w = env.doJSON(http.MethodGet, "/api/v1/weight/record/week?week_num=2024-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeight_MonthStats(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin("alice")
	addWeight(t, env, token, "2023-12-31", 72.0)
	addWeight(t, env, token, "2024-01-15", 70.0)

	w := env.doJSON(http.MethodGet, "/api/v1/weight/record/month?year=2024&month=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats struct {
		Year          int     `json:"year"`
		Month         int     `json:"month"`
		AvgWeight     float64 `json:"avg_weight"`
		DiffLastMonth float64 `json:"diff_last_month"`
	}
	decode(t, w, &stats)
	assert.Equal(t, 2024, stats.Year)
	assert.Equal(t, 1, stats.Month)
	assert.Equal(t, 70.0, stats.AvgWeight)
	assert.Equal(t, -2.0, stats.DiffLastMonth)

	w = env.doJSON(http.MethodGet, "/api/v1/weight/record/month?year=2024&month=13", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A year without a month keeps the year.
	w = env.doJSON(http.MethodGet, "/api/v1/weight/record/month?year=2023", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &stats)
	assert.Equal(t, 2023, stats.Year)
	assert.Equal(t, int(time.Now().Month()), stats.Month)
}

func TestWeight_BatchDelete(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.registerAndLogin("alice")
	bob := env.registerAndLogin("bob")
	first := addWeight(t, env, alice, "2024-01-01", 70.5)
	second := addWeight(t, env, alice, "2024-01-02", 71.0)
	foreign := addWeight(t, env, bob, "2024-01-01", 80.0)

	w := env.doJSON(http.MethodPost, "/api/v1/weight/record/batch-delete", alice, gin.H{
		"ids": []uint64{first.ID, second.ID, foreign.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Count int `json:"count"`
	}
	decode(t, w, &resp)
	assert.Equal(t, 3, resp.Count)

	w = env.doJSON(http.MethodGet, "/api/v1/weight/record/history", bob, nil)
	var history struct {
		Total int64 `json:"total"`
	}
	decode(t, w, &history)
	assert.Equal(t, int64(1), history.Total)

	w = env.doJSON(http.MethodPost, "/api/v1/weight/record/batch-delete", alice, gin.H{"ids": []uint64{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeight_Target(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin("alice")

	w := env.doJSON(http.MethodGet, "/api/v1/weight/target/get", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	for _, target := range []float64{65, 62.5} {
		w = env.doJSON(http.MethodPost, "/api/v1/weight/target/set", token, gin.H{
			"target_weight": target,
			"deadline":      "2024-06-30",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = env.doJSON(http.MethodGet, "/api/v1/weight/target/get", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var target struct {
		TargetWeight float64 `json:"target_weight"`
		Deadline     string  `json:"deadline"`
		IsActive     int8    `json:"is_active"`
	}
	decode(t, w, &target)
	assert.Equal(t, 62.5, target.TargetWeight)
	assert.Equal(t, "2024-06-30", target.Deadline)
	assert.Equal(t, int8(1), target.IsActive)
}

func TestWeight_Export(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin("alice")
	addWeight(t, env, token, "2024-01-01", 70.5)

	w := env.doJSON(http.MethodGet, "/api/v1/weight/record/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="weight_records_`)

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\ufeffdate,weight,remark,week_num,create_time\n"))
	assert.Contains(t, body, "2024-01-01,70.5,,202401,")
}

func TestWeight_TodayStatEmpty(t *testing.T) {
	env := setupTestEnv(t)
	token := env.registerAndLogin("alice")

	w := env.doJSON(http.MethodGet, "/api/v1/weight/stat/today", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stat map[string]interface{}
	decode(t, w, &stat)
	assert.Nil(t, stat["today_weight"])
	assert.Equal(t, 0.0, stat["diff_yesterday"])
}
