package models

import "testing"

func TestRoleValid(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{
			name: "kid",
			role: RoleKid,
			want: true,
		},
		{
			name: "teacher",
			role: RoleTeacher,
			want: true,
		},
		{
			name: "empty",
			role: Role(""),
			want: false,
		},
		{
			name: "unknown",
			role: Role("admin"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.Valid(); got != tt.want {
				t.Errorf("Role.Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressRecordCompletionSets(t *testing.T) {
	record := NewProgressRecord("Alex")

	if record.HasLesson("l1") {
		t.Error("new record reports a completed lesson")
	}
	if record.HasVideo("v1") {
		t.Error("new record reports a completed video")
	}

	record.LessonsCompleted = append(record.LessonsCompleted, "l1")
	record.VideosCompleted = append(record.VideosCompleted, "v1")

	if !record.HasLesson("l1") {
		t.Error("HasLesson() missed a completed lesson")
	}
	if record.HasLesson("l2") {
		t.Error("HasLesson() matched a lesson never completed")
	}
	if !record.HasVideo("v1") {
		t.Error("HasVideo() missed a completed video")
	}
}

func TestNewProgressRecordNonNilSlices(t *testing.T) {
	record := NewProgressRecord("Alex")

	if record.LessonsCompleted == nil || record.VideosCompleted == nil || record.QuizResults == nil {
		t.Error("NewProgressRecord() left a nil collection, want empty slices for JSON arrays")
	}
}
