package api

import (
	"testing"

	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRequestToInput(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name       string
		status     *string
		wantStatus *domain.TaskStatus
		wantErr    error
	}{
		{name: "no status", status: nil},
		{name: "empty status", status: strPtr("")},
		{name: "known status", status: strPtr("IN_PROGRESS"), wantStatus: func() *domain.TaskStatus {
			s := domain.TaskStatusInProgress
			return &s
		}()},
		{name: "unknown status", status: strPtr("DONE"), wantErr: domain.ErrInvalidTaskStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := TaskRequest{Title: "Write report", Description: strPtr("quarterly"), Status: tc.status}

			input, err := req.toInput()
			if tc.wantErr != nil {
				assert.Equal(t, tc.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Write report", input.Title)
			assert.Equal(t, "quarterly", *input.Description)
			assert.Equal(t, tc.wantStatus, input.Status)
		})
	}
}
