package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"fit-insights/internal/domain/metrics"
)

// Store 為未設定資料庫時使用的記憶體資料庫，以合成資料展示洞察 API。
type Store struct {
	mu          sync.RWMutex
	days        map[uuid.UUID]map[string]metrics.DailyMetrics // userID -> dateKey -> day
	subscribers map[uuid.UUID]bool
}

// NewStore 建立新的記憶體 Store 實例。
func NewStore() *Store {
	return &Store{
		days:        make(map[uuid.UUID]map[string]metrics.DailyMetrics),
		subscribers: make(map[uuid.UUID]bool),
	}
}

const dateKeyLayout = "2006-01-02"

// Upsert 寫入或覆蓋單日量測（一人一天一筆）。
func (s *Store) Upsert(userID uuid.UUID, m metrics.DailyMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.days[userID]; !ok {
		s.days[userID] = make(map[string]metrics.DailyMetrics)
	}
	s.days[userID][m.Date.Format(dateKeyLayout)] = m
}

// GetHistory 取截至 asOf 的日量測（日期遞減，至多 days 筆）。
func (s *Store) GetHistory(_ context.Context, userID uuid.UUID, asOf time.Time, days int) ([]metrics.DailyMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := asOf.Format(dateKeyLayout)
	var out []metrics.DailyMetrics
	for key, m := range s.days[userID] {
		if key > cutoff {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > days {
		out = out[:days]
	}
	return out, nil
}

// Subscribe 將使用者加入每週摘要推播清單。
func (s *Store) Subscribe(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[userID] = true
}

// ListSubscribers 取啟用中的摘要訂閱者（依 ID 排序以維持穩定順序）。
func (s *Store) ListSubscribers(_ context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []uuid.UUID
	for id, enabled := range s.subscribers {
		if enabled {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out, nil
}

// SeedSynthetic 為使用者填入截至 asOf 的合成量測。同樣的參數產生同樣的
// 資料，方便展示與測試重現。
func (s *Store) SeedSynthetic(userID uuid.UUID, asOf time.Time, days int) {
	rng := rand.New(rand.NewSource(int64(asOf.Year())*10000 + int64(asOf.YearDay())))

	for i := 0; i < days; i++ {
		date := asOf.AddDate(0, 0, -i)
		// Weekly rhythm: weekends sleep longer and move less.
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday

		hrv := 48 + rng.Float64()*14
		sleep := 6.4 + rng.Float64()*1.4
		steps := 7000 + rng.Intn(5000)
		stress := 28 + rng.Float64()*22
		if weekend {
			sleep += 0.8
			steps -= 2500
		}

		day := metrics.DailyMetrics{
			Date:               date,
			HRV:                ptr(round1(hrv)),
			SleepHours:         ptr(round1(sleep)),
			SleepDeepPct:       ptr(round1(14 + rng.Float64()*8)),
			SleepRemPct:        ptr(round1(18 + rng.Float64()*8)),
			BodyBatteryCharged: ptr(round1(45 + rng.Float64()*45)),
			BodyBatteryDrained: ptr(round1(40 + rng.Float64()*40)),
			Steps:              ptrInt(steps),
			StepsGoal:          ptrInt(10000),
			ActiveCalories:     ptrInt(250 + rng.Intn(400)),
			IntensityMinutes:   ptrInt(rng.Intn(70)),
			AvgStress:          ptr(round1(stress)),
			RestingHR:          ptr(round1(52 + rng.Float64()*6)),
		}
		// Sparse days: the device sometimes misses a night.
		if rng.Intn(12) == 0 {
			day.HRV = nil
			day.SleepHours = nil
			day.SleepDeepPct = nil
			day.SleepRemPct = nil
		}
		s.Upsert(userID, day)
	}
	s.Subscribe(userID)
}

func ptr[T any](v T) *T { return &v }

func ptrInt(v int) *int { return &v }

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
