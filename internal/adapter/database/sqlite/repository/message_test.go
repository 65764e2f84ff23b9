package repository_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"crmchat/internal/adapter/database/sqlite"
	"crmchat/internal/adapter/database/sqlite/repository"
	"crmchat/internal/core/domain"
	"crmchat/internal/core/port"
	"crmchat/internal/core/telemetry"
	. "crmchat/pkg/test"
	"crmchat/pkg/test/factory"
)

type MessageRepositoryTestSuite struct {
	suite.Suite
	db          *sqlite.DB
	deal        domain.Deal
	MessageRepo port.MessageRepository
}

func (s *MessageRepositoryTestSuite) SetupTest() {
	RegisterTestingT(s.T())

	s.db = InitTestDB()
	probe := telemetry.NewNoOpProbe()

	s.MessageRepo = repository.NewMessageRepository(s.db, probe)

	deal, err := repository.NewDealRepository(s.db, probe).Create(context.Background(), factory.NewDeal())
	s.Require().NoError(err)

	s.deal = deal
}

func (s *MessageRepositoryTestSuite) TearDownTest() {
	s.db.Close()
}

func TestMessageRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MessageRepositoryTestSuite))
}

func (s *MessageRepositoryTestSuite) TestRepository_Create_Success() {
	message, err := s.MessageRepo.Create(context.Background(), domain.NewMessage{
		DealID: s.deal.ID,
		Sender: OtherSeedPhone,
		Text:   "Привет",
	})

	assert.NoError(s.T(), err)
	Expect(message.ID).To(BeNumerically(">", 0))
	Expect(message.DealID).To(Equal(s.deal.ID))
	Expect(message.Sender).To(Equal(OtherSeedPhone))
	Expect(message.Text).To(Equal("Привет"))
	Expect(message.IsRead).To(Equal(0))
	Expect(message.Read()).To(BeFalse())
	Expect(message.Timestamp.IsZero()).To(BeFalse())
}

func (s *MessageRepositoryTestSuite) TestRepository_GetByDealID_OldestFirst() {
	ctx := context.Background()
	texts := []string{"first", "second", "third"}

	for _, text := range texts {
		_, err := s.MessageRepo.Create(ctx, factory.NewMessage(s.deal.ID, map[string]any{"Text": text}))
		s.Require().NoError(err)
	}

	messages, err := s.MessageRepo.GetByDealID(ctx, s.deal.ID)

	assert.NoError(s.T(), err)
	Expect(messages).To(HaveLen(3))

	for i, message := range messages {
		Expect(message.Text).To(Equal(texts[i]))
	}

	Expect(messages[2].Timestamp).To(BeTemporally(">=", messages[0].Timestamp))
}

func (s *MessageRepositoryTestSuite) TestRepository_GetByDealID_TimestampBeatsID() {
	ctx := context.Background()
	insert := "INSERT INTO messages (deal_id, sender, text, timestamp) VALUES (?, ?, ?, ?)"

	_, err := s.db.ExecContext(ctx, insert, s.deal.ID, SeedPhone, "later", "2024-01-02 10:00:00")
	s.Require().NoError(err)

	_, err = s.db.ExecContext(ctx, insert, s.deal.ID, OtherSeedPhone, "earlier", "2024-01-01 10:00:00")
	s.Require().NoError(err)

	messages, err := s.MessageRepo.GetByDealID(ctx, s.deal.ID)

	assert.NoError(s.T(), err)
	Expect(messages).To(HaveLen(2))
	Expect(messages[0].Text).To(Equal("earlier"))
	Expect(messages[1].Text).To(Equal("later"))
	Expect(messages[0].ID).To(BeNumerically(">", messages[1].ID))
	Expect(messages[0].Timestamp).To(BeTemporally("<", messages[1].Timestamp))
}

func (s *MessageRepositoryTestSuite) TestRepository_GetByDealID_UnknownDeal() {
	messages, err := s.MessageRepo.GetByDealID(context.Background(), 999)

	assert.NoError(s.T(), err)
	Expect(messages).ToNot(BeNil())
	Expect(messages).To(BeEmpty())
}

func (s *MessageRepositoryTestSuite) TestRepository_Create_UnknownDealViolatesConstraint() {
	_, err := s.MessageRepo.Create(context.Background(), factory.NewMessage(999))

	var storageErr *domain.StorageError
	Expect(errors.As(err, &storageErr)).To(BeTrue())
	Expect(storageErr.Constraint).To(BeTrue())
}

func (s *MessageRepositoryTestSuite) TestRepository_Create_UnknownSenderViolatesConstraint() {
	_, err := s.MessageRepo.Create(context.Background(), factory.NewMessage(s.deal.ID, map[string]any{
		"Sender": "70000000000",
	}))

	Expect(domain.IsStorageError(err)).To(BeTrue())
	Expect(CountRows(s.db, "messages")).To(Equal(0))
}

func (s *MessageRepositoryTestSuite) TestRepository_GetByID_NotFound() {
	_, err := s.MessageRepo.GetByID(context.Background(), 12345)

	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}
