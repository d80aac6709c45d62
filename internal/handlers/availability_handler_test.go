package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/romacabello/salon-scheduler/internal/audit"
	"github.com/romacabello/salon-scheduler/internal/models"
	"github.com/romacabello/salon-scheduler/internal/testutil"
)

func newAvailabilityRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	h := NewAvailabilityHandler(db, audit.NewDispatcher(audit.New(db), zap.NewNop()))

	r := gin.New()
	r.GET("/availability", h.List)
	r.GET("/availability/:date", h.Get)
	r.PUT("/availability/:date", h.Put)
	r.DELETE("/availability/:date", h.Delete)
	return r, db
}

func putJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAvailabilityPut_CreatesDay(t *testing.T) {
	r, db := newAvailabilityRouter(t)

	w := putJSON(t, r, "/availability/2030-06-10", gin.H{
		"slot_size_min": 45,
		"ranges": []gin.H{
			{"start_time": "10:00", "end_time": "13:00"},
			{"start_time": "16:00", "end_time": "20:00"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var day models.AvailabilityDay
	require.NoError(t, db.Preload("Ranges").Where("date = ?", models.NewDate(2030, 6, 10)).First(&day).Error)
	assert.True(t, day.Enabled)
	assert.Equal(t, 45, day.SlotSizeMin)
	assert.Len(t, day.Ranges, 2)
}

func TestAvailabilityPut_OverwritesWholesale(t *testing.T) {
	r, db := newAvailabilityRouter(t)

	w := putJSON(t, r, "/availability/2030-06-10", gin.H{
		"slot_size_min": 45,
		"ranges": []gin.H{
			{"start_time": "10:00", "end_time": "13:00"},
			{"start_time": "16:00", "end_time": "20:00"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Replace with a single narrower range.
	w = putJSON(t, r, "/availability/2030-06-10", gin.H{
		"slot_size_min": 30,
		"ranges": []gin.H{
			{"start_time": "09:00", "end_time": "12:00"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var day models.AvailabilityDay
	require.NoError(t, db.Preload("Ranges").Where("date = ?", models.NewDate(2030, 6, 10)).First(&day).Error)
	assert.Equal(t, 30, day.SlotSizeMin)
	require.Len(t, day.Ranges, 1)
	assert.Equal(t, "09:00", day.Ranges[0].StartTime)

	var count int64
	require.NoError(t, db.Model(&models.AvailabilityDay{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAvailabilityPut_IsIdempotent(t *testing.T) {
	r, db := newAvailabilityRouter(t)

	payload := gin.H{
		"slot_size_min": 45,
		"ranges":        []gin.H{{"start_time": "10:00", "end_time": "13:00"}},
	}

	require.Equal(t, http.StatusOK, putJSON(t, r, "/availability/2030-06-10", payload).Code)
	require.Equal(t, http.StatusOK, putJSON(t, r, "/availability/2030-06-10", payload).Code)

	var ranges int64
	require.NoError(t, db.Model(&models.AvailabilityRange{}).Count(&ranges).Error)
	assert.EqualValues(t, 1, ranges)
}

func TestAvailabilityPut_RejectsOverlappingRanges(t *testing.T) {
	r, _ := newAvailabilityRouter(t)

	w := putJSON(t, r, "/availability/2030-06-10", gin.H{
		"slot_size_min": 45,
		"ranges": []gin.H{
			{"start_time": "10:00", "end_time": "13:00"},
			{"start_time": "12:00", "end_time": "15:00"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "overlapping_ranges")
}

func TestAvailabilityPut_RejectsBadSlotSize(t *testing.T) {
	r, _ := newAvailabilityRouter(t)

	w := putJSON(t, r, "/availability/2030-06-10", gin.H{
		"slot_size_min": -15,
		"ranges":        []gin.H{{"start_time": "10:00", "end_time": "13:00"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_slot_size")
}

func TestAvailabilityList_OnlyConfiguredDays(t *testing.T) {
	r, _ := newAvailabilityRouter(t)

	payload := gin.H{
		"slot_size_min": 45,
		"ranges":        []gin.H{{"start_time": "10:00", "end_time": "13:00"}},
	}
	require.Equal(t, http.StatusOK, putJSON(t, r, "/availability/2030-06-10", payload).Code)
	require.Equal(t, http.StatusOK, putJSON(t, r, "/availability/2030-06-12", payload).Code)

	req := httptest.NewRequest(http.MethodGet, "/availability?from=2030-06-01&to=2030-06-30", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []models.AvailabilityDay `json:"data"`
		Total int                      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
}

func TestAvailabilityGet_UnconfiguredIs404(t *testing.T) {
	r, _ := newAvailabilityRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/availability/2030-06-10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvailabilityDelete_ClosesTheDay(t *testing.T) {
	r, db := newAvailabilityRouter(t)

	payload := gin.H{
		"slot_size_min": 45,
		"ranges":        []gin.H{{"start_time": "10:00", "end_time": "13:00"}},
	}
	require.Equal(t, http.StatusOK, putJSON(t, r, "/availability/2030-06-10", payload).Code)

	req := httptest.NewRequest(http.MethodDelete, "/availability/2030-06-10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var days, ranges int64
	require.NoError(t, db.Model(&models.AvailabilityDay{}).Count(&days).Error)
	require.NoError(t, db.Model(&models.AvailabilityRange{}).Count(&ranges).Error)
	assert.Zero(t, days)
	assert.Zero(t, ranges)
}
