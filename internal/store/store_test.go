package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/parishworks/reportsdb/internal/models"
	"github.com/parishworks/reportsdb/internal/report"
	"github.com/parishworks/reportsdb/internal/store"
)

// setupTestStore creates a store over an in-memory SQLite database
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Account{},
		&models.ReportDocument{},
		&models.Template{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return store.New(db)
}

func register(t *testing.T, s *store.Store, handle, secret string) string {
	t.Helper()
	id, err := s.Register(context.Background(), handle, secret, store.RegisterInput{})
	require.NoError(t, err)
	return id
}

func TestRegisterThenAuthenticate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id, err := s.Register(ctx, "pastor1", "secret1", store.RegisterInput{
		Email:       "pastor1@example.org",
		DisplayName: "Pastor One",
		OrgName:     "Grace Chapel",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	account, err := s.Authenticate(ctx, "pastor1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, id, account.AccountID)
	assert.Equal(t, "pastor1", account.Handle)
	assert.Equal(t, "Grace Chapel", account.OrgName)
	assert.Equal(t, "user", account.Role)
}

func TestRegisterValidation(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "ab", "secret1", store.RegisterInput{})
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = s.Register(ctx, "abc", "12345", store.RegisterInput{})
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestRegisterHandleConflict(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	register(t, s, "pastor1", "secret1")

	_, err := s.Register(ctx, "pastor1", "othersecret", store.RegisterInput{Email: "other@example.org"})
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestRegisterEmailConflict(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "pastor1", "secret1", store.RegisterInput{Email: "shared@example.org"})
	require.NoError(t, err)

	_, err = s.Register(ctx, "pastor2", "secret2", store.RegisterInput{Email: "shared@example.org"})
	assert.ErrorIs(t, err, store.ErrConflict)

	// Empty emails never collide
	_, err = s.Register(ctx, "pastor3", "secret3", store.RegisterInput{})
	require.NoError(t, err)
	_, err = s.Register(ctx, "pastor4", "secret4", store.RegisterInput{})
	require.NoError(t, err)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	register(t, s, "pastor1", "secret1")

	account, err := s.Authenticate(ctx, "pastor1", "wrong1")
	assert.ErrorIs(t, err, store.ErrUnauthorized)
	assert.Nil(t, account)

	// Unknown handle is indistinguishable from a wrong secret
	account, err = s.Authenticate(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, store.ErrUnauthorized)
	assert.Nil(t, account)
}

func TestSaveOverwritesSameName(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	owner := register(t, s, "pastor1", "secret1")

	first := report.Payload{"membership": report.Number(100)}
	id1, err := s.SaveDocument(ctx, owner, "Annual 2025", "Grace Chapel", first, 0.1)
	require.NoError(t, err)

	second := report.Payload{"membership": report.Number(120)}
	id2, err := s.SaveDocument(ctx, owner, "Annual 2025", "Grace Chapel", second, 0.2)
	require.NoError(t, err)
	assert.Equal(t, id1, id2, "second save must overwrite, not insert")

	summaries, err := s.ListDocuments(ctx, owner)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0.2, summaries[0].Completion)

	doc, err := s.LoadDocument(ctx, id1, owner)
	require.NoError(t, err)
	assert.True(t, doc.Payload["membership"].Equal(report.Number(120)))
}

func TestListDocumentsScenario(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	owner := register(t, s, "pastor1", "secret1")

	payload := report.Payload{"membership": report.Number(120)}
	id, err := s.SaveDocument(ctx, owner, "Annual 2025", "Grace Chapel", payload, 0.5)
	require.NoError(t, err)

	summaries, err := s.ListDocuments(ctx, owner)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Annual 2025", summaries[0].ReportName)
	assert.Equal(t, "Grace Chapel", summaries[0].OrgName)
	assert.NotEmpty(t, summaries[0].PeriodLabel)

	doc, err := s.LoadDocument(ctx, id, owner)
	require.NoError(t, err)
	assert.True(t, doc.Payload["membership"].Equal(report.Number(120)))
}

func TestLoadEnforcesOwnership(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	ownerA := register(t, s, "pastorA", "secretA")
	ownerB := register(t, s, "pastorB", "secretB")

	id, err := s.SaveDocument(ctx, ownerA, "X", "Grace Chapel", report.Payload{}, 0)
	require.NoError(t, err)

	doc, err := s.LoadDocument(ctx, id, ownerB)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Nil(t, doc)

	err = s.DeleteDocument(ctx, id, ownerB)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Still loadable by the true owner
	doc, err = s.LoadDocument(ctx, id, ownerA)
	require.NoError(t, err)
	assert.Equal(t, "X", doc.ReportName)
}

func TestDeleteArchives(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	owner := register(t, s, "pastor1", "secret1")

	id, err := s.SaveDocument(ctx, owner, "Annual 2025", "Grace Chapel", report.Payload{}, 0)
	require.NoError(t, err)

	require.NoError(t, s.DeleteDocument(ctx, id, owner))

	_, err = s.LoadDocument(ctx, id, owner)
	assert.ErrorIs(t, err, store.ErrNotFound)

	summaries, err := s.ListDocuments(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, summaries)

	// Second delete reports not found
	err = s.DeleteDocument(ctx, id, owner)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteFreesNameForReuse(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	owner := register(t, s, "pastor1", "secret1")

	id1, err := s.SaveDocument(ctx, owner, "Annual 2025", "Grace Chapel", report.Payload{}, 0)
	require.NoError(t, err)
	require.NoError(t, s.DeleteDocument(ctx, id1, owner))

	// (owner, name) is only unique among live documents
	id2, err := s.SaveDocument(ctx, owner, "Annual 2025", "Grace Chapel", report.Payload{}, 0)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestTableRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	owner := register(t, s, "pastor1", "secret1")

	table := report.NewTable("Grade Level", "Enrolled at Start", "Current Enrollment")
	table.AppendRow(report.String("Grade 1"), report.Number(30), report.Number(28))
	table.AppendRow(report.String("Grade 2"), report.Number(0), report.Number(0))
	table.AppendRow(report.String(""), report.Number(12), report.Number(12))

	payload := report.Payload{
		"grade_school_enrollment": report.TableValue(table),
		"notes":                   report.String(""),
	}

	id, err := s.SaveDocument(ctx, owner, "Annual 2025", "Grace Chapel", payload, 0)
	require.NoError(t, err)

	doc, err := s.LoadDocument(ctx, id, owner)
	require.NoError(t, err)

	got := doc.Payload["grade_school_enrollment"]
	require.Equal(t, report.KindTable, got.Kind)
	assert.True(t, got.Table.Equal(table), "table must round-trip with column and row order intact")
	assert.True(t, doc.Payload["notes"].Equal(report.String("")))
}

func TestSaveRejectsRaggedTable(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	owner := register(t, s, "pastor1", "secret1")

	ragged := &report.Table{
		Columns: []string{"A", "B"},
		Data: map[string][]report.Value{
			"A": {report.String("x")},
			"B": {report.String("y"), report.String("z")},
		},
	}

	_, err := s.SaveDocument(ctx, owner, "Annual 2025", "Grace Chapel",
		report.Payload{"bad": report.TableValue(ragged)}, 0)
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestSeedTemplates(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SeedTemplates(ctx))

	templates, err := s.ListTemplates(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, templates)

	// Seeding again must not duplicate
	require.NoError(t, s.SeedTemplates(ctx))
	again, err := s.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, again, len(templates))

	names := make(map[string]bool, len(templates))
	for _, tpl := range templates {
		names[tpl.Name] = true
	}
	assert.True(t, names["Strategic Plan"])
	assert.True(t, names["Grade School Enrollment"])

	payload, err := s.LoadTemplate(ctx, templates[0].TemplateID)
	require.NoError(t, err)
	require.NoError(t, payload.Validate())
	assert.NotEmpty(t, payload)
}

func TestLoadTemplateNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.LoadTemplate(context.Background(), 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
