package services

import (
	"testing"

	"rooya_backend/internal/models"
	"rooya_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestCountLetters(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int64
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"cyrillic", "полёты", 6},
		{"arabic", "حلم", 3},
		{"mixed", "dream حلم", 9},
		{"emoji", "🌙🌙", 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CountLetters(tc.in))
		})
	}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestEvaluateQuota(t *testing.T) {
	plan := &models.Plan{
		LetterQuota:      int64Ptr(100),
		AudioMinuteQuota: intPtr(10),
		MaxDreams:        intPtr(3),
	}

	t.Run("within all ceilings", func(t *testing.T) {
		sub := &models.UserPlan{LettersUsed: 50, AudioMinutesUsed: 5}
		assert.NoError(t, evaluateQuota(plan, sub, 2, 30, 3))
	})

	t.Run("exactly reaching a ceiling passes", func(t *testing.T) {
		sub := &models.UserPlan{LettersUsed: 90}
		assert.NoError(t, evaluateQuota(plan, sub, 0, 10, 0))
	})

	t.Run("letters exceeded", func(t *testing.T) {
		sub := &models.UserPlan{LettersUsed: 95}
		err := evaluateQuota(plan, sub, 0, 6, 0)
		assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
	})

	t.Run("audio exceeded", func(t *testing.T) {
		sub := &models.UserPlan{AudioMinutesUsed: 8}
		err := evaluateQuota(plan, sub, 0, 0, 3)
		assert.ErrorIs(t, err, apperrors.ErrAudioQuotaExceeded)
	})

	t.Run("zero audio request ignores audio ceiling", func(t *testing.T) {
		sub := &models.UserPlan{AudioMinutesUsed: 10}
		assert.NoError(t, evaluateQuota(plan, sub, 0, 1, 0))
	})

	t.Run("max dreams reached", func(t *testing.T) {
		sub := &models.UserPlan{}
		err := evaluateQuota(plan, sub, 3, 1, 0)
		assert.ErrorIs(t, err, apperrors.ErrMaxDreamsReached)
	})

	t.Run("nil ceilings are unlimited", func(t *testing.T) {
		open := &models.Plan{}
		sub := &models.UserPlan{LettersUsed: 1 << 40, AudioMinutesUsed: 1 << 20}
		assert.NoError(t, evaluateQuota(open, sub, 1<<20, 1<<30, 1<<10))
	})

	t.Run("letter denial wins over dream denial", func(t *testing.T) {
		sub := &models.UserPlan{LettersUsed: 100}
		err := evaluateQuota(plan, sub, 3, 1, 0)
		assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
	})
}
