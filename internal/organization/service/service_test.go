package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"orghub_backend/internal/directory"
	"orghub_backend/internal/events"
	"orghub_backend/internal/organization/transport"
	"orghub_backend/internal/tenant"
	"orghub_backend/platform/apperr"
	"orghub_backend/platform/logger"

	"github.com/google/uuid"
)

// fakeDirectory is an in-memory Directory for workflow tests.
type fakeDirectory struct {
	mu     sync.Mutex
	admins map[uuid.UUID]directory.Admin
	orgs   map[uuid.UUID]directory.Organization
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		admins: make(map[uuid.UUID]directory.Admin),
		orgs:   make(map[uuid.UUID]directory.Organization),
	}
}

func (f *fakeDirectory) FindAdminByEmail(_ context.Context, email string) (directory.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return directory.Admin{}, directory.ErrNotFound
}

func (f *fakeDirectory) FindAdminByID(_ context.Context, id uuid.UUID) (directory.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.admins[id]
	if !ok {
		return directory.Admin{}, directory.ErrNotFound
	}
	return a, nil
}

func (f *fakeDirectory) InsertAdmin(_ context.Context, email, passwordHash, organizationName, partitionID string) (directory.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.admins {
		if a.Email == email {
			return directory.Admin{}, directory.ErrDuplicate
		}
	}
	a := directory.Admin{
		ID:               uuid.New(),
		Email:            email,
		PasswordHash:     passwordHash,
		OrganizationName: organizationName,
		PartitionID:      partitionID,
		CreatedAt:        time.Now(),
	}
	f.admins[a.ID] = a
	return a, nil
}

func (f *fakeDirectory) UpdateAdminEmail(_ context.Context, id uuid.UUID, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.admins[id]
	if !ok {
		return directory.ErrNotFound
	}
	a.Email = email
	f.admins[id] = a
	return nil
}

func (f *fakeDirectory) UpdateAdminPassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.admins[id]
	if !ok {
		return directory.ErrNotFound
	}
	a.PasswordHash = passwordHash
	f.admins[id] = a
	return nil
}

func (f *fakeDirectory) UpdateAdminOrganization(_ context.Context, id uuid.UUID, organizationName, partitionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.admins[id]
	if !ok {
		return directory.ErrNotFound
	}
	a.OrganizationName = organizationName
	a.PartitionID = partitionID
	f.admins[id] = a
	return nil
}

func (f *fakeDirectory) DeleteAdmin(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.admins[id]; !ok {
		return directory.ErrNotFound
	}
	delete(f.admins, id)
	return nil
}

func (f *fakeDirectory) FindOrganizationByName(_ context.Context, name string) (directory.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orgs {
		if o.OrganizationName == name {
			return o, nil
		}
	}
	return directory.Organization{}, directory.ErrNotFound
}

func (f *fakeDirectory) InsertOrganization(_ context.Context, name, partitionID string, adminID uuid.UUID, adminEmail string) (directory.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orgs {
		if o.OrganizationName == name {
			return directory.Organization{}, directory.ErrDuplicate
		}
	}
	o := directory.Organization{
		ID:               uuid.New(),
		OrganizationName: name,
		PartitionID:      partitionID,
		AdminID:          adminID,
		AdminEmail:       adminEmail,
		CreatedAt:        time.Now(),
	}
	f.orgs[o.ID] = o
	return o, nil
}

func (f *fakeDirectory) UpdateOrganizationName(_ context.Context, id uuid.UUID, name, partitionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orgs[id]
	if !ok {
		return directory.ErrNotFound
	}
	o.OrganizationName = name
	o.PartitionID = partitionID
	f.orgs[id] = o
	return nil
}

func (f *fakeDirectory) UpdateOrganizationAdminEmail(_ context.Context, id uuid.UUID, adminEmail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orgs[id]
	if !ok {
		return directory.ErrNotFound
	}
	o.AdminEmail = adminEmail
	f.orgs[id] = o
	return nil
}

func (f *fakeDirectory) SetOrganizationLogoKey(_ context.Context, id uuid.UUID, logoKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orgs[id]
	if !ok {
		return directory.ErrNotFound
	}
	o.LogoKey = &logoKey
	f.orgs[id] = o
	return nil
}

func (f *fakeDirectory) DeleteOrganization(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orgs[id]; !ok {
		return directory.ErrNotFound
	}
	delete(f.orgs, id)
	return nil
}

var _ directory.Directory = (*fakeDirectory)(nil)

// fakePartitions is an in-memory partition store that records the order of
// operations so tests can assert copy-before-drop and drop-before-cleanup.
type fakePartitions struct {
	mu      sync.Mutex
	docs    map[string][]string
	ops     []string
	copyErr error
}

func newFakePartitions() *fakePartitions {
	return &fakePartitions{docs: make(map[string][]string)}
}

func (f *fakePartitions) Create(_ context.Context, partitionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[partitionID]; !ok {
		f.docs[partitionID] = nil
	}
	f.ops = append(f.ops, "create "+partitionID)
	return nil
}

func (f *fakePartitions) Drop(_ context.Context, partitionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, partitionID)
	f.ops = append(f.ops, "drop "+partitionID)
	return nil
}

func (f *fakePartitions) Copy(_ context.Context, fromID, toID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, fmt.Sprintf("copy %s %s", fromID, toID))
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	f.docs[toID] = append(f.docs[toID], f.docs[fromID]...)
	return int64(len(f.docs[fromID])), nil
}

func (f *fakePartitions) seed(partitionID string, docs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[partitionID] = append(f.docs[partitionID], docs...)
}

func (f *fakePartitions) exists(partitionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[partitionID]
	return ok
}

func (f *fakePartitions) count(partitionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs[partitionID])
}

// recordingBus captures published events synchronously.
type recordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, e)
}

func (b *recordingBus) PublishSync(_ context.Context, e events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var names []string
	for _, e := range b.published {
		names = append(names, e.EventName())
	}
	return names
}

func newTestService() (*Service, *fakeDirectory, *fakePartitions, *recordingBus) {
	dir := newFakeDirectory()
	parts := newFakePartitions()
	bus := &recordingBus{}
	return New(dir, parts, bus, logger.New("development")), dir, parts, bus
}

func strPtr(s string) *string { return &s }

func TestCreateProvisionsDirectoryAndPartition(t *testing.T) {
	svc, dir, parts, bus := newTestService()

	view, err := svc.Create(context.Background(), transport.CreateOrganizationRequest{
		OrganizationName: "Acme Corp",
		Email:            "a@x.com",
		Password:         "secret1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if view.OrganizationName != "Acme Corp" {
		t.Fatalf("organization name = %q, want %q", view.OrganizationName, "Acme Corp")
	}
	if view.CollectionName != "org_acme_corp" {
		t.Fatalf("collection name = %q, want %q", view.CollectionName, "org_acme_corp")
	}
	if view.AdminEmail != "a@x.com" {
		t.Fatalf("admin email = %q, want %q", view.AdminEmail, "a@x.com")
	}
	if !parts.exists("org_acme_corp") {
		t.Fatal("partition was not created")
	}

	admin, err := dir.FindAdminByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("admin record missing: %v", err)
	}
	if admin.PasswordHash == "secret1" || admin.PasswordHash == "" {
		t.Fatalf("password stored unhashed: %q", admin.PasswordHash)
	}
	if admin.PartitionID != "org_acme_corp" {
		t.Fatalf("admin partition = %q, want org_acme_corp", admin.PartitionID)
	}

	names := bus.names()
	if len(names) != 1 || names[0] != "organization.provisioned" {
		t.Fatalf("published events = %v, want [organization.provisioned]", names)
	}
}

func TestCreateViewMatchesNormalizedName(t *testing.T) {
	svc, _, _, _ := newTestService()

	view, err := svc.Create(context.Background(), transport.CreateOrganizationRequest{
		OrganizationName: "  My Café & Bar  ",
		Email:            "cafe@x.com",
		Password:         "secret1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if view.OrganizationName != "My Café & Bar" {
		t.Fatalf("organization name not trimmed: %q", view.OrganizationName)
	}
	if view.CollectionName != tenant.Identifier(view.OrganizationName) {
		t.Fatalf("collection name %q does not match normalizer output %q",
			view.CollectionName, tenant.Identifier(view.OrganizationName))
	}
}

func TestCreateBlankNameRejectedWithoutWrites(t *testing.T) {
	svc, dir, parts, _ := newTestService()

	_, err := svc.Create(context.Background(), transport.CreateOrganizationRequest{
		OrganizationName: "   ",
		Email:            "a@x.com",
		Password:         "secret1",
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("blank name error kind = %v, want validation", apperr.GetKind(err))
	}

	if len(dir.admins) != 0 || len(dir.orgs) != 0 {
		t.Fatalf("directory written for blank name: %d admins, %d orgs",
			len(dir.admins), len(dir.orgs))
	}
	if parts.exists("org_default") {
		t.Fatal("fallback partition created for blank name")
	}
}

func TestUpdateBlankNewNameRejected(t *testing.T) {
	svc, dir, parts, _ := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")
	opsBefore := len(parts.ops)

	admin, _ := dir.FindAdminByEmail(ctx, "a@x.com")
	_, err := svc.Update(ctx, "Acme Corp", admin.ID, transport.UpdateOrganizationRequest{
		NewOrganizationName: strPtr("  \t "),
	})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("blank new name error kind = %v, want validation", apperr.GetKind(err))
	}
	if len(parts.ops) != opsBefore {
		t.Fatalf("partition ops ran for blank new name: %v", parts.ops[opsBefore:])
	}
	org, _ := dir.FindOrganizationByName(ctx, "Acme Corp")
	if org.OrganizationName != "Acme Corp" {
		t.Fatalf("organization renamed by blank new name: %+v", org)
	}
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")

	_, err := svc.Create(ctx, transport.CreateOrganizationRequest{
		OrganizationName: "Acme Corp",
		Email:            "other@x.com",
		Password:         "secret1",
	})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("duplicate name error kind = %v, want conflict", apperr.GetKind(err))
	}
	if !strings.Contains(err.Error(), "organization 'Acme Corp' already exists") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestCreateDuplicateEmailConflictsWithoutPartialWrite(t *testing.T) {
	svc, dir, parts, _ := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")

	_, err := svc.Create(ctx, transport.CreateOrganizationRequest{
		OrganizationName: "Beta Inc",
		Email:            "a@x.com",
		Password:         "secret1",
	})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("duplicate email error kind = %v, want conflict", apperr.GetKind(err))
	}
	if !strings.Contains(err.Error(), "email 'a@x.com' is already registered") {
		t.Fatalf("unexpected error message: %v", err)
	}

	// The email check runs before any write: no orphan organization record
	// and no orphan partition.
	if _, err := dir.FindOrganizationByName(ctx, "Beta Inc"); err == nil {
		t.Fatal("orphan organization record created on email conflict")
	}
	if parts.exists("org_beta_inc") {
		t.Fatal("orphan partition created on email conflict")
	}
	if len(dir.admins) != 1 {
		t.Fatalf("admin count = %d, want 1", len(dir.admins))
	}
}

func TestGetByNameNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.GetByName(context.Background(), "Nobody")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("error kind = %v, want not found", apperr.GetKind(err))
	}
	if !strings.Contains(err.Error(), "organization 'Nobody' not found") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestRenameMigratesAllDocuments(t *testing.T) {
	svc, dir, parts, bus := newTestService()
	ctx := context.Background()

	view := mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")
	parts.seed(view.CollectionName, "doc1", "doc2", "doc3")

	admin, _ := dir.FindAdminByEmail(ctx, "a@x.com")
	updated, err := svc.Update(ctx, "Acme Corp", admin.ID, transport.UpdateOrganizationRequest{
		NewOrganizationName: strPtr("Acme Inc"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.OrganizationName != "Acme Inc" || updated.CollectionName != "org_acme_inc" {
		t.Fatalf("updated view = %+v", updated)
	}
	if got := parts.count("org_acme_inc"); got != 3 {
		t.Fatalf("new partition has %d documents, want 3", got)
	}
	if parts.exists("org_acme_corp") {
		t.Fatal("old partition still present after rename")
	}

	// Copy must fully complete before the old partition is dropped.
	wantOps := []string{
		"create org_acme_corp",
		"create org_acme_inc",
		"copy org_acme_corp org_acme_inc",
		"drop org_acme_corp",
	}
	if len(parts.ops) != len(wantOps) {
		t.Fatalf("partition ops = %v, want %v", parts.ops, wantOps)
	}
	for i := range wantOps {
		if parts.ops[i] != wantOps[i] {
			t.Fatalf("partition op[%d] = %q, want %q", i, parts.ops[i], wantOps[i])
		}
	}

	// Old name resolves to nothing, new name resolves to the migrated org.
	if _, err := svc.GetByName(ctx, "Acme Corp"); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("old name lookup error = %v, want not found", err)
	}

	// Admin's denormalized copies follow the metadata.
	admin, _ = dir.FindAdminByID(ctx, admin.ID)
	if admin.OrganizationName != "Acme Inc" || admin.PartitionID != "org_acme_inc" {
		t.Fatalf("admin denormalized fields not updated: %+v", admin)
	}

	names := bus.names()
	if len(names) != 2 || names[1] != "organization.renamed" {
		t.Fatalf("published events = %v", names)
	}
	renamed := bus.published[1].(events.OrganizationRenamed)
	if renamed.DocumentsCopied != 3 {
		t.Fatalf("DocumentsCopied = %d, want 3", renamed.DocumentsCopied)
	}
}

func TestRenameWithSamePartitionStillPublishesEvent(t *testing.T) {
	svc, dir, parts, bus := newTestService()
	ctx := context.Background()

	view := mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")
	parts.seed(view.CollectionName, "doc1")
	opsBefore := len(parts.ops)

	// "Acme-Corp" normalizes to the same partition id as "Acme Corp".
	admin, _ := dir.FindAdminByEmail(ctx, "a@x.com")
	updated, err := svc.Update(ctx, "Acme Corp", admin.ID, transport.UpdateOrganizationRequest{
		NewOrganizationName: strPtr("Acme-Corp"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.OrganizationName != "Acme-Corp" || updated.CollectionName != "org_acme_corp" {
		t.Fatalf("updated view = %+v", updated)
	}
	if len(parts.ops) != opsBefore {
		t.Fatalf("partition migrated for a same-identifier rename: %v", parts.ops[opsBefore:])
	}
	if got := parts.count("org_acme_corp"); got != 1 {
		t.Fatalf("partition has %d documents, want 1", got)
	}

	names := bus.names()
	if len(names) != 2 || names[1] != "organization.renamed" {
		t.Fatalf("published events = %v, want a rename event", names)
	}
	renamed := bus.published[1].(events.OrganizationRenamed)
	if renamed.OldName != "Acme Corp" || renamed.NewName != "Acme-Corp" {
		t.Fatalf("rename event = %+v", renamed)
	}
	if renamed.DocumentsCopied != 0 {
		t.Fatalf("DocumentsCopied = %d, want 0 for a same-identifier rename", renamed.DocumentsCopied)
	}
}

func TestRenameConflictAbortsBeforeAnyWrite(t *testing.T) {
	svc, dir, parts, _ := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")
	mustCreate(t, svc, "Beta Inc", "b@x.com", "secret1")
	opsBefore := len(parts.ops)

	admin, _ := dir.FindAdminByEmail(ctx, "a@x.com")
	_, err := svc.Update(ctx, "Acme Corp", admin.ID, transport.UpdateOrganizationRequest{
		NewOrganizationName: strPtr("Beta Inc"),
	})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("error kind = %v, want conflict", apperr.GetKind(err))
	}

	if len(parts.ops) != opsBefore {
		t.Fatalf("partition ops ran despite conflict: %v", parts.ops[opsBefore:])
	}
	org, _ := dir.FindOrganizationByName(ctx, "Acme Corp")
	if org.PartitionID != "org_acme_corp" {
		t.Fatalf("directory mutated despite conflict: %+v", org)
	}
}

func TestRenameCopyFailureLeavesBothPartitions(t *testing.T) {
	svc, dir, parts, _ := newTestService()
	ctx := context.Background()

	view := mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")
	parts.seed(view.CollectionName, "doc1", "doc2")
	parts.copyErr = fmt.Errorf("connection reset")

	admin, _ := dir.FindAdminByEmail(ctx, "a@x.com")
	_, err := svc.Update(ctx, "Acme Corp", admin.ID, transport.UpdateOrganizationRequest{
		NewOrganizationName: strPtr("Acme Inc"),
	})
	if apperr.GetKind(err) != apperr.KindUnavailable {
		t.Fatalf("error kind = %v, want unavailable", apperr.GetKind(err))
	}

	if !parts.exists("org_acme_corp") {
		t.Fatal("source partition destroyed after failed copy")
	}
	if got := parts.count("org_acme_corp"); got != 2 {
		t.Fatalf("source partition has %d documents, want 2", got)
	}
	// Directory still points at the old partition.
	org, _ := dir.FindOrganizationByName(ctx, "Acme Corp")
	if org.PartitionID != "org_acme_corp" {
		t.Fatalf("directory repointed after failed copy: %+v", org)
	}
}

func TestUpdateByNonOwnerForbidden(t *testing.T) {
	svc, dir, _, _ := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")
	mustCreate(t, svc, "Beta Inc", "b@x.com", "secret1")

	intruder, _ := dir.FindAdminByEmail(ctx, "b@x.com")
	_, err := svc.Update(ctx, "Acme Corp", intruder.ID, transport.UpdateOrganizationRequest{
		NewOrganizationName: strPtr("Stolen Corp"),
	})
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("error kind = %v, want forbidden", apperr.GetKind(err))
	}
}

func TestUpdateEmailConflictAndSuccess(t *testing.T) {
	svc, dir, _, _ := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")
	mustCreate(t, svc, "Beta Inc", "b@x.com", "secret1")
	admin, _ := dir.FindAdminByEmail(ctx, "a@x.com")

	_, err := svc.Update(ctx, "Acme Corp", admin.ID, transport.UpdateOrganizationRequest{
		Email: strPtr("b@x.com"),
	})
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("error kind = %v, want conflict", apperr.GetKind(err))
	}

	updated, err := svc.Update(ctx, "Acme Corp", admin.ID, transport.UpdateOrganizationRequest{
		Email: strPtr("new@x.com"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.AdminEmail != "new@x.com" {
		t.Fatalf("admin email = %q, want new@x.com", updated.AdminEmail)
	}
	refreshed, _ := dir.FindAdminByID(ctx, admin.ID)
	if refreshed.Email != "new@x.com" {
		t.Fatalf("admin record email = %q, want new@x.com", refreshed.Email)
	}
}

func TestUpdatePasswordRehashes(t *testing.T) {
	svc, dir, _, _ := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")
	admin, _ := dir.FindAdminByEmail(ctx, "a@x.com")
	oldHash := admin.PasswordHash

	if _, err := svc.Update(ctx, "Acme Corp", admin.ID, transport.UpdateOrganizationRequest{
		Password: strPtr("secret2"),
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	refreshed, _ := dir.FindAdminByID(ctx, admin.ID)
	if refreshed.PasswordHash == oldHash {
		t.Fatal("password hash unchanged")
	}
	if refreshed.PasswordHash == "secret2" {
		t.Fatal("password stored unhashed")
	}
}

func TestDeleteByNonOwnerForbiddenAndUntouched(t *testing.T) {
	svc, dir, parts, _ := newTestService()
	ctx := context.Background()

	view := mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")
	parts.seed(view.CollectionName, "doc1")
	mustCreate(t, svc, "Beta Inc", "b@x.com", "secret1")

	intruder, _ := dir.FindAdminByEmail(ctx, "b@x.com")
	_, err := svc.Delete(ctx, "Acme Corp", intruder.ID)
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("error kind = %v, want forbidden", apperr.GetKind(err))
	}
	if !strings.Contains(err.Error(), "only the organization admin can delete this organization") {
		t.Fatalf("unexpected error message: %v", err)
	}

	if _, err := dir.FindOrganizationByName(ctx, "Acme Corp"); err != nil {
		t.Fatal("organization record removed by forbidden delete")
	}
	if _, err := dir.FindAdminByEmail(ctx, "a@x.com"); err != nil {
		t.Fatal("admin record removed by forbidden delete")
	}
	if parts.count("org_acme_corp") != 1 {
		t.Fatal("partition touched by forbidden delete")
	}
}

func TestDeleteRemovesAllThreeRecords(t *testing.T) {
	svc, dir, parts, bus := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "Acme Corp", "a@x.com", "secret1")
	admin, _ := dir.FindAdminByEmail(ctx, "a@x.com")

	result, err := svc.Delete(ctx, "Acme Corp", admin.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	want := "Organization 'Acme Corp' and all associated data deleted successfully"
	if result.Message != want {
		t.Fatalf("message = %q, want %q", result.Message, want)
	}

	if parts.exists("org_acme_corp") {
		t.Fatal("partition still present")
	}
	if _, err := dir.FindOrganizationByName(ctx, "Acme Corp"); err == nil {
		t.Fatal("organization record still present")
	}
	if _, err := dir.FindAdminByID(ctx, admin.ID); err == nil {
		t.Fatal("admin record still present")
	}

	names := bus.names()
	if names[len(names)-1] != "organization.deprovisioned" {
		t.Fatalf("published events = %v", names)
	}
}

func TestDeleteUnknownOrganizationNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Delete(context.Background(), "Ghost Org", uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("error kind = %v, want not found", apperr.GetKind(err))
	}
}

func mustCreate(t *testing.T, svc *Service, name, email, pass string) transport.OrganizationResponse {
	t.Helper()
	view, err := svc.Create(context.Background(), transport.CreateOrganizationRequest{
		OrganizationName: name,
		Email:            email,
		Password:         pass,
	})
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", name, err)
	}
	return view
}
