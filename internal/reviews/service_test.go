package reviews

import (
	"context"
	"testing"

	"karoo-backend/internal/agents"
	"karoo-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewsTest(t *testing.T) (*Service, *models.Agent) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Agent{}, &models.Review{}))

	agent := &models.Agent{Fullname: "Piet Marais", Email: "piet@karoo.properties"}
	require.NoError(t, db.Create(agent).Error)

	agentSvc := &agents.Service{DB: db}
	return &Service{DB: db, Agents: agentSvc}, agent
}

func TestCreate_RatingBounds(t *testing.T) {
	svc, agent := setupReviewsTest(t)
	ctx := context.Background()

	for _, bad := range []int{0, -1, 6} {
		_, err := svc.Create(ctx, CreateReviewInput{
			PropertyID: uuid.New(), AgentID: agent.AgentID, Rating: bad,
		})
		assert.Equal(t, ErrInvalidRating, err)
	}

	r, err := svc.Create(ctx, CreateReviewInput{
		PropertyID: uuid.New(), AgentID: agent.AgentID, Rating: 5,
	})
	require.NoError(t, err)
	assert.False(t, r.Approved)
}

func TestApprovedReviewRecomputesAgentRating(t *testing.T) {
	svc, agent := setupReviewsTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateReviewInput{
		PropertyID: uuid.New(), AgentID: agent.AgentID, Rating: 4, Approved: true,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateReviewInput{
		PropertyID: uuid.New(), AgentID: agent.AgentID, Rating: 2, Approved: true,
	})
	require.NoError(t, err)

	got, err := svc.Agents.GetByID(ctx, agent.AgentID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got.Rating, 0.001)
	assert.Equal(t, int64(2), got.TotalReviews)
}

func TestUnapprovedReviewDoesNotCountUntilApproved(t *testing.T) {
	svc, agent := setupReviewsTest(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateReviewInput{
		PropertyID: uuid.New(), AgentID: agent.AgentID, Rating: 5,
	})
	require.NoError(t, err)

	got, err := svc.Agents.GetByID(ctx, agent.AgentID)
	require.NoError(t, err)
	assert.Zero(t, got.TotalReviews)

	_, err = svc.Approve(ctx, r.ReviewID)
	require.NoError(t, err)

	got, err = svc.Agents.GetByID(ctx, agent.AgentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalReviews)
	assert.InDelta(t, 5.0, got.Rating, 0.001)
}

func TestGetForProperty_ApprovedOnly(t *testing.T) {
	svc, agent := setupReviewsTest(t)
	ctx := context.Background()
	propID := uuid.New()

	_, err := svc.Create(ctx, CreateReviewInput{PropertyID: propID, AgentID: agent.AgentID, Rating: 4, Approved: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateReviewInput{PropertyID: propID, AgentID: agent.AgentID, Rating: 1})
	require.NoError(t, err)

	reviews, err := svc.GetForProperty(ctx, propID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
}

func TestApprove_NotFound(t *testing.T) {
	svc, _ := setupReviewsTest(t)
	_, err := svc.Approve(context.Background(), uuid.New())
	assert.Equal(t, ErrReviewNotFound, err)
}
