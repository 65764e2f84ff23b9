package service_test

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"crmchat/internal/adapter/database/sqlite"
	"crmchat/internal/adapter/database/sqlite/repository"
	"crmchat/internal/core/domain"
	"crmchat/internal/core/service"
	. "crmchat/pkg/test"
	"crmchat/pkg/test/factory"
)

type MessageServiceTestSuite struct {
	suite.Suite
	db      *sqlite.DB
	probe   *eventProbe
	deal    domain.Deal
	Service *service.MessageService
}

func (s *MessageServiceTestSuite) SetupTest() {
	RegisterTestingT(s.T())

	s.db = InitTestDB()
	s.probe = newEventProbe()

	deal, err := repository.NewDealRepository(s.db, s.probe).Create(ctx, factory.NewDeal(map[string]any{
		"Name":   "Сделка",
		"Amount": 50.0,
	}))
	s.Require().NoError(err)

	s.deal = deal
	s.Service = service.NewMessageService(repository.NewMessageRepository(s.db, s.probe), s.probe)
}

func (s *MessageServiceTestSuite) TearDownTest() {
	s.db.Close()
}

func TestMessageServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MessageServiceTestSuite))
}

func (s *MessageServiceTestSuite) TestService_Post() {
	message, err := s.Service.Post(ctx, domain.NewMessage{
		DealID: s.deal.ID,
		Sender: OtherSeedPhone,
		Text:   "Добрый день",
	})

	assert.NoError(s.T(), err)
	Expect(message.ID).To(BeNumerically(">", 0))
	Expect(message.DealID).To(Equal(s.deal.ID))
	Expect(message.Read()).To(BeFalse())
	Expect(message.Timestamp.IsZero()).To(BeFalse())
	Expect(s.probe.Events()).To(ConsistOf("message.posted"))
}

func (s *MessageServiceTestSuite) TestService_Post_RequiresFields() {
	cases := []domain.NewMessage{
		{Sender: SeedPhone, Text: "hi"},
		{DealID: s.deal.ID, Text: "hi"},
		{DealID: s.deal.ID, Sender: SeedPhone},
	}

	for _, message := range cases {
		_, err := s.Service.Post(ctx, message)

		Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue(), "%+v", message)
	}

	Expect(CountRows(s.db, "messages")).To(Equal(0))
}

func (s *MessageServiceTestSuite) TestService_Post_UnknownDealIsStorageError() {
	_, err := s.Service.Post(ctx, factory.NewMessage(s.deal.ID+100, map[string]any{"Text": "hi"}))

	Expect(domain.IsStorageError(err)).To(BeTrue())
}

func (s *MessageServiceTestSuite) TestService_ListByDeal() {
	for _, text := range []string{"one", "two", "three"} {
		_, err := s.Service.Post(ctx, factory.NewMessage(s.deal.ID, map[string]any{"Text": text}))
		s.Require().NoError(err)
	}

	messages, err := s.Service.ListByDeal(ctx, s.deal.ID)

	assert.NoError(s.T(), err)
	Expect(messages).To(HaveLen(3))
	Expect(messages[2].Text).To(Equal("three"))

	empty, err := s.Service.ListByDeal(ctx, s.deal.ID+1)

	assert.NoError(s.T(), err)
	Expect(empty).To(BeEmpty())
}
