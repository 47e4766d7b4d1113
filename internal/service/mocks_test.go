package service

import (
	"context"
	"testing"

	"pageturn/internal/client"
	"pageturn/internal/config"
	"pageturn/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockMediaStore struct {
	mock.Mock
}

func (m *mockMediaStore) Upload(ctx context.Context, artifact *model.UploadArtifact) (string, error) {
	args := m.Called(ctx, artifact)
	return args.String(0), args.Error(1)
}

type mockRazorpayClient struct {
	mock.Mock
}

func (m *mockRazorpayClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*client.GatewayOrder, error) {
	args := m.Called(ctx, amount, currency, receipt)
	order, _ := args.Get(0).(*client.GatewayOrder)
	return order, args.Error(1)
}

type mockMailClient struct {
	mock.Mock
}

func (m *mockMailClient) SendResetPasswordOTP(ctx context.Context, email string, otp int) error {
	args := m.Called(ctx, email, otp)
	return args.Error(0)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := client.InitDBClient(config.Database{
		Driver: "sqlite",
		URL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, client.Migrate(db))

	return db
}
