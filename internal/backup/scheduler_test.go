package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/identifier"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/models"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/storage"
	"github.com/lelisa21/Academic-Resource-managment-system-sub000/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	root := t.TempDir()
	fs := storage.New(root, zerolog.Nop())
	sentinel := &models.User{ID: "USR-sentinel", Username: "sentinel", Role: models.RoleAdmin, Status: models.UserStatusActive}
	require.NoError(t, fs.Save(storage.KindUsers, sentinel.ID, sentinel))
	return store.Open(fs, identifier.New(), zerolog.Nop()), root
}

func backupDirs(t *testing.T, root string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(root, storage.BackupDir))
	require.NoError(t, err)
	return entries
}

func TestRunOnceSkipsCleanStore(t *testing.T) {
	st, root := newTestStore(t)
	sched := NewScheduler(st, time.Minute, time.Second, zerolog.Nop())

	sched.RunOnce()
	require.Empty(t, backupDirs(t, root))
}

func TestRunOnceSnapshotsDirtyStore(t *testing.T) {
	st, root := newTestStore(t)
	st.SaveCourse(&models.Course{ID: "CRS-b1", Code: "PHY110", MaxStudents: 25, Active: true})
	require.True(t, st.Dirty())

	sched := NewScheduler(st, time.Minute, time.Second, zerolog.Nop())
	sched.RunOnce()

	require.False(t, st.Dirty())
	dirs := backupDirs(t, root)
	require.Len(t, dirs, 1)

	copied := filepath.Join(root, storage.BackupDir, dirs[0].Name(), storage.KindCourses, "CRS-b1.json")
	_, err := os.Stat(copied)
	require.NoError(t, err)
}

func TestSnapshotMirrorsKindLayout(t *testing.T) {
	st, root := newTestStore(t)
	st.SaveGrade(&models.Grade{ID: "GRD-b1", Score: 50, MaxScore: 100})
	st.SaveEnrollment(&models.Enrollment{ID: "ENR-b1", Status: models.EnrollmentStatusEnrolled})

	NewScheduler(st, time.Minute, time.Second, zerolog.Nop()).RunOnce()

	dirs := backupDirs(t, root)
	require.Len(t, dirs, 1)
	for _, kind := range storage.Kinds {
		info, err := os.Stat(filepath.Join(root, storage.BackupDir, dirs[0].Name(), kind))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}

func TestCloseFlushesPendingChanges(t *testing.T) {
	st, root := newTestStore(t)
	sched := NewScheduler(st, time.Hour, time.Second, zerolog.Nop())
	require.NoError(t, sched.Start())

	st.SaveAssignment(&models.Assignment{ID: "ASG-b1", Status: models.AssignmentStatusActive, MaxScore: 100})
	sched.Close()

	require.False(t, st.Dirty())
	require.Len(t, backupDirs(t, root), 1)
}
