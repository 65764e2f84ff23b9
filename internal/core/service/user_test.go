package service_test

import (
	"errors"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"crmchat/internal/adapter/database/sqlite"
	"crmchat/internal/adapter/database/sqlite/repository"
	"crmchat/internal/core/domain"
	"crmchat/internal/core/service"
	. "crmchat/pkg/test"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *sqlite.DB
	probe   *eventProbe
	Service *service.UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	RegisterTestingT(s.T())

	s.db = InitTestDB()
	s.probe = newEventProbe()

	s.Service = service.NewUserService(repository.NewUserRepository(s.db, s.probe), s.probe)
}

func (s *UserServiceTestSuite) TearDownTest() {
	s.db.Close()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestService_Login_RegistersNewPhone() {
	user, err := s.Service.Login(ctx, "79990000001")

	assert.NoError(s.T(), err)
	Expect(user.Phone).To(Equal("79990000001"))
	Expect(user.Name).To(BeNil())
	Expect(CountRows(s.db, "users")).To(Equal(3))
	Expect(s.probe.Events()).To(ConsistOf("user.registered"))
}

func (s *UserServiceTestSuite) TestService_Login_IsIdempotent() {
	first, err := s.Service.Login(ctx, "79990000002")
	s.Require().NoError(err)

	second, err := s.Service.Login(ctx, "79990000002")
	s.Require().NoError(err)

	Expect(second.Phone).To(Equal(first.Phone))
	Expect(second.CreatedAt).To(BeTemporally("==", first.CreatedAt))
	Expect(CountRows(s.db, "users")).To(Equal(3))
	Expect(s.probe.Events()).To(HaveLen(1))
}

func (s *UserServiceTestSuite) TestService_Login_ConcurrentCallsCreateOneRow() {
	var wg sync.WaitGroup
	errs := make([]error, 5)

	for i := range errs {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			_, errs[index] = s.Service.Login(ctx, "79990000003")
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		Expect(err).ToNot(HaveOccurred())
	}

	Expect(CountRows(s.db, "users")).To(Equal(3))
}

func (s *UserServiceTestSuite) TestService_Login_ExistingUserKeepsName() {
	user, err := s.Service.Login(ctx, SeedPhone)

	assert.NoError(s.T(), err)
	Expect(user.Name).ToNot(BeNil())
	Expect(*user.Name).To(Equal("Пользователь 1"))
	Expect(s.probe.Events()).To(BeEmpty())
}

func (s *UserServiceTestSuite) TestService_Login_RequiresPhone() {
	_, err := s.Service.Login(ctx, "")

	Expect(errors.Is(err, domain.ErrValidation)).To(BeTrue())
	Expect(CountRows(s.db, "users")).To(Equal(2))
}

func (s *UserServiceTestSuite) TestService_List() {
	users, err := s.Service.List(ctx)

	assert.NoError(s.T(), err)
	Expect(users).To(HaveLen(2))
}
