package clinic

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"

	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
	"github.com/clinicdesk/clinicdesk/internal/platform/kvstore"
)

func newMockedRepo(t *testing.T) (Repository, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	return NewRepo(kvstore.NewWithClient(client)), mock
}

func TestRepoGet_ClinicNotFound(t *testing.T) {
	repo, mock := newMockedRepo(t)

	mock.ExpectHGet(kvstore.ClinicDirectoryKey, "clinic:nope").RedisNil()

	_, err := repo.Get(context.Background(), "clinic:nope")
	if fault.KindOf(err) != fault.KindClinicNotFound {
		t.Errorf("expected clinic-not-found, got %v", err)
	}
}

func TestRepoInitPatients(t *testing.T) {
	repo, mock := newMockedRepo(t)

	mock.ExpectHSet("clinic:acme:patients", "_init", "1").SetVal(1)
	mock.ExpectHDel("clinic:acme:patients", "_init").SetVal(1)

	if err := repo.InitPatients(context.Background(), "acme"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMigrateLegacy_CopiesAndDeletes(t *testing.T) {
	repo, mock := newMockedRepo(t)

	mock.ExpectHGetAll(kvstore.LegacyPatientsKey).SetVal(map[string]string{
		"patient:1-abc": `{"id":"patient:1-abc","name":"Jane","status":"waiting"}`,
	})
	mock.ExpectLRange(kvstore.LegacyWaitingRoomKey, 0, -1).SetVal([]string{"patient:1-abc", "patient:2-def"})
	mock.ExpectLRange(kvstore.LegacyDoctorRoomKey, 0, -1).SetVal([]string{"patient:3-ghi"})
	mock.Regexp().ExpectSetNX(kvstore.MigrationFlagKey, `^\d+$`, 0).SetVal(true)

	mock.ExpectHSet("clinic:clinic1:patients", "patient:1-abc",
		`{"id":"patient:1-abc","name":"Jane","status":"waiting"}`).SetVal(1)
	// Tail-first pushes keep head order.
	mock.ExpectLPush("clinic:clinic1:waiting_room", "patient:2-def").SetVal(1)
	mock.ExpectLPush("clinic:clinic1:waiting_room", "patient:1-abc").SetVal(2)
	mock.ExpectLPush("clinic:clinic1:doctor_room", "patient:3-ghi").SetVal(1)
	mock.ExpectDel(kvstore.LegacyPatientsKey, kvstore.LegacyWaitingRoomKey,
		kvstore.LegacyDoctorRoomKey).SetVal(3)

	migrated, err := repo.MigrateLegacy(context.Background(), "clinic1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !migrated {
		t.Error("expected migration to report work done")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestMigrateLegacy_NothingToDo(t *testing.T) {
	repo, mock := newMockedRepo(t)

	mock.ExpectHGetAll(kvstore.LegacyPatientsKey).SetVal(map[string]string{})
	mock.ExpectLRange(kvstore.LegacyWaitingRoomKey, 0, -1).SetVal([]string{})
	mock.ExpectLRange(kvstore.LegacyDoctorRoomKey, 0, -1).SetVal([]string{})

	migrated, err := repo.MigrateLegacy(context.Background(), "clinic1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if migrated {
		t.Error("expected no-op when legacy keys are empty")
	}
}

func TestMigrateLegacy_FlagAlreadyHeld(t *testing.T) {
	repo, mock := newMockedRepo(t)

	mock.ExpectHGetAll(kvstore.LegacyPatientsKey).SetVal(map[string]string{
		"patient:1-abc": `{}`,
	})
	mock.ExpectLRange(kvstore.LegacyWaitingRoomKey, 0, -1).SetVal([]string{})
	mock.ExpectLRange(kvstore.LegacyDoctorRoomKey, 0, -1).SetVal([]string{})
	mock.Regexp().ExpectSetNX(kvstore.MigrationFlagKey, `^\d+$`, 0).SetVal(false)

	migrated, err := repo.MigrateLegacy(context.Background(), "clinic1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if migrated {
		t.Error("expected loser of the flag race to back off")
	}
}
