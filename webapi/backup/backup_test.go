package backup_test

import (
	"fmt"
	"testing"

	"github.com/amirasaad/vmadmin/pkg/domain/vm"
	"github.com/amirasaad/vmadmin/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BackupTestSuite struct {
	testutils.APITestSuite
	token string
	vm    *vm.VirtualMachine
}

func (s *BackupTestSuite) SetupTest() {
	s.APITestSuite.SetupTest()
	s.token = s.CreateTestUser().Token
	s.vm = vm.New("app", vm.StatusRunning, 1, 512, decimal.NewFromInt(3), nil)
	s.Store.SeedVM(s.vm)
}

func (s *BackupTestSuite) TestCreateVariants() {
	tests := []struct {
		desc  string
		path  string
		body  string
		field string
		msg   string
	}{
		{"plain unknown vm", "/backups", fmt.Sprintf(`{"vm":%q,"size":1}`, uuid.New()),
			"vm", "The specified virtual machine does not exist."},
		{"plain zero size", "/backups", fmt.Sprintf(`{"vm":%q,"size":0}`, s.vm.ID),
			"size", "Backup size must be greater than zero."},
		{"billed unknown vm", "/backups/billed", fmt.Sprintf(`{"vm":%q,"size":1,"bill":1}`, uuid.New()),
			"vm", "Virtual Machine does not exist."},
		{"billed negative bill", "/backups/billed", fmt.Sprintf(`{"vm":%q,"size":1,"bill":-1}`, s.vm.ID),
			"bill", "Bill cannot be negative."},
	}
	for _, tc := range tests {
		s.Run(tc.desc, func() {
			resp := s.MakeRequest(fiber.MethodPost, tc.path, tc.body, s.token)
			s.Equal(fiber.StatusBadRequest, resp.StatusCode)
			s.Equal([]string{tc.msg}, s.DecodeProblem(resp).Errors[tc.field])
		})
	}
}

func (s *BackupTestSuite) TestCreateAndFetch() {
	resp := s.MakeRequest(fiber.MethodPost, "/backups/billed", fmt.Sprintf(`{"vm":%q,"size":2.5,"bill":"7.25"}`, s.vm.ID), s.token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	created := testutils.Decode[map[string]any](&s.APITestSuite, resp)
	s.Equal("pending", created["status"])
	s.Equal("7.25", created["bill"])

	resp = s.MakeRequest(fiber.MethodGet, "/backups/"+created["id"].(string), "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	got := testutils.Decode[map[string]any](&s.APITestSuite, resp)
	s.Equal(s.vm.ID.String(), got["vm"])

	resp = s.MakeRequest(fiber.MethodGet, "/backups", "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.Len(testutils.Decode[[]map[string]any](&s.APITestSuite, resp), 1)
}

func (s *BackupTestSuite) TestSnapshots() {
	resp := s.MakeRequest(fiber.MethodPost, "/snapshots", fmt.Sprintf(`{"vm":%q,"name":"nightly","size":1}`, s.vm.ID), s.token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close() //nolint:errcheck

	resp = s.MakeRequest(fiber.MethodPost, "/snapshots", fmt.Sprintf(`{"vm":%q,"size":1}`, s.vm.ID), s.token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal([]string{"This field is required."}, s.DecodeProblem(resp).Errors["name"])

	resp = s.MakeRequest(fiber.MethodGet, "/snapshots?vm="+s.vm.ID.String(), "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	snaps := testutils.Decode[[]map[string]any](&s.APITestSuite, resp)
	s.Require().Len(snaps, 1)
	s.Equal("nightly", snaps[0]["name"])

	resp = s.MakeRequest(fiber.MethodGet, "/snapshots?vm=nope", "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func TestBackupTestSuite(t *testing.T) {
	suite.Run(t, new(BackupTestSuite))
}
