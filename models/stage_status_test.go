package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStageStatusFor(t *testing.T) {
	t.Run("pending maps by step", func(t *testing.T) {
		require.Equal(t, StageStatusDraft, StageStatusFor(ApplicationStatusPending, 1))
		require.Equal(t, StageStatusDraft, StageStatusFor(ApplicationStatusPending, FinalApplicationStep-1))
		require.Equal(t, StageStatusPendingReview, StageStatusFor(ApplicationStatusPending, FinalApplicationStep))
	})
	t.Run("pipeline statuses map regardless of step", func(t *testing.T) {
		for step := 0; step <= FinalApplicationStep; step++ {
			require.Equal(t, StageStatusPendingReview, StageStatusFor(ApplicationStatusUnderReview, step))
			require.Equal(t, StageStatusInAssessment, StageStatusFor(ApplicationStatusInterview, step))
			require.Equal(t, StageStatusInAssessment, StageStatusFor(ApplicationStatusTraining, step))
			require.Equal(t, StageStatusInAssessment, StageStatusFor(ApplicationStatusInternship, step))
			require.Equal(t, StageStatusApproved, StageStatusFor(ApplicationStatusHired, step))
			require.Equal(t, StageStatusRejected, StageStatusFor(ApplicationStatusRejected, step))
		}
	})
	t.Run("unknown status falls back to draft", func(t *testing.T) {
		require.Equal(t, StageStatusDraft, StageStatusFor(ApplicationStatus("archived"), 2))
	})
}

func TestApplicationStatusTransitions(t *testing.T) {
	t.Run("one step forward along the pipeline", func(t *testing.T) {
		require.True(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatusUnderReview))
		require.True(t, ApplicationStatusUnderReview.CanTransitionTo(ApplicationStatusInterview))
		require.True(t, ApplicationStatusInterview.CanTransitionTo(ApplicationStatusTraining))
		require.True(t, ApplicationStatusTraining.CanTransitionTo(ApplicationStatusInternship))
		require.True(t, ApplicationStatusInternship.CanTransitionTo(ApplicationStatusHired))
	})
	t.Run("no skipping or moving backwards", func(t *testing.T) {
		require.False(t, ApplicationStatusPending.CanTransitionTo(ApplicationStatusInterview))
		require.False(t, ApplicationStatusInterview.CanTransitionTo(ApplicationStatusPending))
	})
	t.Run("rejection from any non-terminal status", func(t *testing.T) {
		for _, status := range statusOrder {
			if status.IsTerminal() {
				continue
			}
			require.True(t, status.CanTransitionTo(ApplicationStatusRejected), string(status))
		}
	})
	t.Run("terminal statuses never move", func(t *testing.T) {
		require.False(t, ApplicationStatusHired.CanTransitionTo(ApplicationStatusRejected))
		require.False(t, ApplicationStatusRejected.CanTransitionTo(ApplicationStatusPending))
	})
	t.Run("validity", func(t *testing.T) {
		require.True(t, ApplicationStatusRejected.IsValid())
		require.True(t, ApplicationStatusPending.IsValid())
		require.False(t, ApplicationStatus("archived").IsValid())
	})
}
