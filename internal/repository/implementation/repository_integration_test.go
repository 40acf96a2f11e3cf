package implementation

import (
	"context"
	"fmt"
	"os"
	"testing"

	"notehub-be/internal/entity"
	"notehub-be/internal/model"
	"notehub-be/internal/repository/specification"
	"notehub-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, "silent")
	require.NoError(t, err)

	db.Config.DisableForeignKeyConstraintWhenMigrating = true
	require.NoError(t, db.AutoMigrate(&model.School{}, &model.Profile{}, &model.Note{}, &model.NoteRating{}))
	return db
}

// inTx runs fn in a transaction that is always rolled back.
func inTx(t *testing.T, db *gorm.DB, fn func(tx *gorm.DB)) {
	tx := db.Begin()
	require.NoError(t, tx.Error)
	defer tx.Rollback()
	fn(tx)
}

func TestSchoolTiersAgainstPostgres(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	inTx(t, db, func(tx *gorm.DB) {
		mine := &model.School{Id: uuid.New(), Name: "it-mine-" + uuid.NewString()}
		other := &model.School{Id: uuid.New(), Name: "it-other-" + uuid.NewString()}
		require.NoError(t, tx.Create([]*model.School{mine, other}).Error)

		profiles := NewProfileRepository(tx)
		classmate := &entity.Profile{Id: uuid.New(), Username: "it-" + uuid.NewString()[:8], SchoolId: &mine.Id}
		stranger := &entity.Profile{Id: uuid.New(), Username: "it-" + uuid.NewString()[:8], SchoolId: &other.Id}
		nomad := &entity.Profile{Id: uuid.New(), Username: "it-" + uuid.NewString()[:8]}
		for _, p := range []*entity.Profile{classmate, stranger, nomad} {
			require.NoError(t, profiles.Save(ctx, p))
		}

		notes := NewNoteRepository(tx)
		subject := "it-subject-" + uuid.NewString()
		create := func(owner *entity.Profile, title string) *entity.Note {
			n := &entity.Note{Id: uuid.New(), Title: title, Subject: subject, ClassName: "C", NoteType: entity.NoteTypeLab, UserId: owner.Id, IsPublic: true}
			require.NoError(t, notes.Create(ctx, n))
			return n
		}
		same := create(classmate, "same")
		far := create(stranger, "far")
		create(nomad, "nomad")
		require.NoError(t, notes.AdjustRating(ctx, far.Id, 10, 3))

		inSchool, err := notes.FindAll(ctx,
			specification.PublicNotes{},
			specification.BySubject{Subject: subject},
			specification.OwnerInSchool{SchoolID: mine.Id},
			specification.MostRated{},
			specification.Pagination{Limit: 30},
		)
		require.NoError(t, err)
		require.Len(t, inSchool, 1)
		assert.Equal(t, same.Id, inSchool[0].Id)

		outside, err := notes.FindAll(ctx,
			specification.PublicNotes{},
			specification.BySubject{Subject: subject},
			specification.OwnerOutsideSchool{SchoolID: mine.Id},
			specification.MostRated{},
			specification.Pagination{Limit: 20},
		)
		require.NoError(t, err)
		require.Len(t, outside, 1)
		assert.Equal(t, far.Id, outside[0].Id)
		assert.Equal(t, 10, outside[0].RatingSum)
		assert.Equal(t, 3, outside[0].RatingCount)

		all, err := notes.FindAll(ctx, specification.BySubject{Subject: subject}, specification.MostRated{})
		require.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, far.Id, all[0].Id)

		hydrated, err := notes.FindAll(ctx, specification.ByIDs{IDs: []uuid.UUID{same.Id, far.Id}}, specification.WithOwner{})
		require.NoError(t, err)
		require.Len(t, hydrated, 2)
		for _, n := range hydrated {
			require.NotNil(t, n.Owner)
		}
	})
}

func TestSearchEscapesWildcards(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	inTx(t, db, func(tx *gorm.DB) {
		notes := NewNoteRepository(tx)
		marker := uuid.NewString()
		for _, title := range []string{"100% " + marker, "100 " + marker} {
			require.NoError(t, notes.Create(ctx, &entity.Note{
				Id: uuid.New(), Title: title, Subject: "S", ClassName: "C", NoteType: entity.NoteTypeOther, UserId: uuid.New(), IsPublic: true,
			}))
		}

		count, err := notes.Count(ctx, specification.NoteSearchQuery{Query: fmt.Sprintf("100%% %s", marker)})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestAdjustRatingMissingNote(t *testing.T) {
	db := openTestDB(t)

	inTx(t, db, func(tx *gorm.DB) {
		err := NewNoteRepository(tx).AdjustRating(context.Background(), uuid.New(), 1, 1)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestForUpdateLocksNoteRow(t *testing.T) {
	db := openTestDB(t)
	id := uuid.New()

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var m model.Note
		return applySpecifications(tx.Model(&model.Note{}), specification.ByID{ID: id}, specification.ForUpdate{}).First(&m)
	})
	assert.Contains(t, sql, "FOR UPDATE")

	inTx(t, db, func(tx *gorm.DB) {
		note, err := NewNoteRepository(tx).FindOne(context.Background(), specification.ByID{ID: id}, specification.ForUpdate{})
		require.NoError(t, err)
		assert.Nil(t, note)
	})
}
