package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"notehub-be/internal/dto"
	"notehub-be/internal/repository/memory"
	"notehub-be/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdateMeCreatesProfile(t *testing.T) {
	st := newStore()
	school := st.addSchool("MIT")
	svc := NewProfileService(&fakeFactory{store: st}, nil)
	userId := uuid.New()

	_, err := svc.GetMe(context.Background(), userId)
	assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))

	res, err := svc.UpdateMe(context.Background(), userId, &dto.UpdateProfileRequest{
		Username: " ada ",
		FullName: "Ada Lovelace",
		SchoolId: &school.Id,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada", res.Username)
	require.NotNil(t, res.School)
	assert.Equal(t, "MIT", res.School.Name)

	res, err = svc.UpdateMe(context.Background(), userId, &dto.UpdateProfileRequest{Username: "ada"})
	require.NoError(t, err)
	assert.Nil(t, res.SchoolId)
}

func TestProfileUpdateMeRejects(t *testing.T) {
	st := newStore()
	taken := st.addProfile("bob", nil)
	svc := NewProfileService(&fakeFactory{store: st}, nil)

	unknown := uuid.New()
	_, err := svc.UpdateMe(context.Background(), uuid.New(), &dto.UpdateProfileRequest{Username: "ada", SchoolId: &unknown})
	assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	assert.Equal(t, "School not found", apperror.MessageOf(err))

	_, err = svc.UpdateMe(context.Background(), uuid.New(), &dto.UpdateProfileRequest{Username: taken.Username})
	assert.Equal(t, http.StatusConflict, apperror.StatusOf(err))

	_, err = svc.UpdateMe(context.Background(), taken.Id, &dto.UpdateProfileRequest{Username: taken.Username, Bio: "hi"})
	assert.NoError(t, err)
}

func TestListSchoolsIsCached(t *testing.T) {
	st := newStore()
	st.addSchool("Stanford")
	st.addSchool("MIT")
	svc := NewProfileService(&fakeFactory{store: st}, memory.NewSchoolRepository(time.Minute))

	first, err := svc.ListSchools(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "MIT", first[0].Name)

	st.addSchool("Caltech")
	second, err := svc.ListSchools(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, 1, st.schoolFinds)
}
