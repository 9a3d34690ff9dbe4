package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"idea-passport-be/internal/dto"
	"idea-passport-be/internal/entity"
	"idea-passport-be/pkg/passport/memorytrack"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSession(uow *fakeUow) *entity.Session {
	session := &entity.Session{Id: uuid.New(), Status: entity.SessionStatusInProgress, CreatedAt: time.Now()}
	uow.sessionRepo.sessions[session.Id] = session
	return session
}

func TestApplyFieldSummaryTruncatesLongContent(t *testing.T) {
	uow := newFakeUow()
	svc := NewMemoryService(&fakeFactory{uow: uow})
	session := seedSession(uow)

	long := strings.Repeat("ა", 300)
	err := svc.ApplyFieldSummary(context.Background(), session.Id, "problem", long)
	require.NoError(t, err)

	stored := uow.memoryRepo.memories[session.Id]
	require.NotNil(t, stored)
	summary := stored.FieldSummaries["problem"]
	assert.Equal(t, memorytrack.MaxSummaryLength, len([]rune(summary)))
}

func TestShowMemoryForFreshSession(t *testing.T) {
	uow := newFakeUow()
	svc := NewMemoryService(&fakeFactory{uow: uow})
	session := seedSession(uow)

	res, err := svc.Show(context.Background(), session.Id)
	require.NoError(t, err)

	assert.Equal(t, session.Id, res.SessionId)
	assert.Empty(t, res.Contradictions)
	assert.Empty(t, res.Summary)
}

func TestShowMemoryUnknownSession(t *testing.T) {
	svc := NewMemoryService(&fakeFactory{uow: newFakeUow()})

	_, err := svc.Show(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestResolveContradiction(t *testing.T) {
	uow := newFakeUow()
	svc := NewMemoryService(&fakeFactory{uow: uow})
	session := seedSession(uow)

	m := memorytrack.NewMemory(session.Id)
	m = memorytrack.AddContradiction(m, memorytrack.Contradiction{
		Field1:     "pricing",
		Field2:     "revenue_model",
		Statement1: "უფასო აპლიკაცია",
		Statement2: "თვიური გადასახადი",
	})
	uow.memoryRepo.memories[session.Id] = &m
	contradictionId := m.Contradictions[0].Id

	res, err := svc.ResolveContradiction(context.Background(), &dto.ResolveContradictionRequest{
		SessionId:       session.Id,
		ContradictionId: contradictionId,
	})
	require.NoError(t, err)

	require.Len(t, res.Contradictions, 1)
	assert.True(t, res.Contradictions[0].Resolved)
}

func TestResolveContradictionUnknownId(t *testing.T) {
	uow := newFakeUow()
	svc := NewMemoryService(&fakeFactory{uow: uow})
	session := seedSession(uow)

	_, err := svc.ResolveContradiction(context.Background(), &dto.ResolveContradictionRequest{
		SessionId:       session.Id,
		ContradictionId: "missing",
	})
	require.Error(t, err)
}
