package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnrollmentStatus(t *testing.T) {
	tests := []struct {
		input string
		want  EnrollmentStatus
		ok    bool
	}{
		{"pending", EnrollmentPending, true},
		{"approved", EnrollmentApproved, true},
		{"rejected", EnrollmentRejected, true},
		{"Approved", "", false},
		{"", "", false},
		{"deleted", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseEnrollmentStatus(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseBulkAction(t *testing.T) {
	for _, valid := range []string{"approve", "reject", "restore", "delete"} {
		_, ok := ParseBulkAction(valid)
		assert.True(t, ok, "action %q", valid)
	}

	for _, invalid := range []string{"", "promote", "Approve", "DELETE"} {
		_, ok := ParseBulkAction(invalid)
		assert.False(t, ok, "action %q", invalid)
	}
}

func TestBulkActionTargetStatus(t *testing.T) {
	status, ok := BulkActionApprove.TargetStatus()
	assert.True(t, ok)
	assert.Equal(t, EnrollmentApproved, status)

	status, ok = BulkActionRestore.TargetStatus()
	assert.True(t, ok)
	assert.Equal(t, EnrollmentApproved, status)

	status, ok = BulkActionReject.TargetStatus()
	assert.True(t, ok)
	assert.Equal(t, EnrollmentRejected, status)

	_, ok = BulkActionDelete.TargetStatus()
	assert.False(t, ok)
}
