package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samandr77/microservices/compliance/internal/assistant"
	"github.com/samandr77/microservices/compliance/internal/blob"
	"github.com/samandr77/microservices/compliance/internal/entity"
	"github.com/samandr77/microservices/compliance/internal/mocks"
	"github.com/samandr77/microservices/compliance/internal/repository"
	"github.com/samandr77/microservices/compliance/internal/seed"
	"github.com/samandr77/microservices/compliance/internal/service"
)

const referenceDate = "2024-05-15"

type TestService struct {
	repo      *repository.Memory
	blob      *blob.Memory
	fetcher   *mocks.MockFetcher
	provider  *mocks.MockProvider
	notifier  *mocks.MockNotifier
	publisher *mocks.MockPublisher
	s         *service.Service
}

type testOption func(cfg *service.Config, repo *service.Repository)

func withConfig(fn func(cfg *service.Config)) testOption {
	return func(cfg *service.Config, _ *service.Repository) { fn(cfg) }
}

func withRepo(wrap func(service.Repository) service.Repository) testOption {
	return func(_ *service.Config, repo *service.Repository) { *repo = wrap(*repo) }
}

func NewTestService(t *testing.T, opts ...testOption) *TestService {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockFetcher := mocks.NewMockFetcher(ctrl)
	mockProvider := mocks.NewMockProvider(ctrl)
	mockNotifier := mocks.NewMockNotifier(ctrl)
	mockPublisher := mocks.NewMockPublisher(ctrl)

	memory := repository.NewMemory(seed.Default())
	store := blob.NewMemory()

	cfg := service.Config{
		ReferenceDate:   referenceDate,
		AnalysisDelay:   time.Millisecond,
		AITimeout:       time.Second,
		ContextMaxBytes: assistant.DefaultMaxContextBytes,
		DocumentHosts:   []string{"docs.example.com"},
	}

	var repo service.Repository = memory

	for _, opt := range opts {
		opt(&cfg, &repo)
	}

	s := service.New(
		repo,
		store,
		mockFetcher,
		mockProvider,
		mockNotifier,
		mockPublisher,
		nil,
		nil,
		cfg,
	)

	return &TestService{
		repo:      memory,
		blob:      store,
		fetcher:   mockFetcher,
		provider:  mockProvider,
		notifier:  mockNotifier,
		publisher: mockPublisher,
		s:         s,
	}
}

type eventMatcher entity.EventType

func eventOf(eventType entity.EventType) gomock.Matcher {
	return eventMatcher(eventType)
}

func (m eventMatcher) Matches(x any) bool {
	e, ok := x.(entity.Event)
	return ok && e.Type == entity.EventType(m)
}

func (m eventMatcher) String() string {
	return "event " + string(m)
}

func TestService_Dashboard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		filter  entity.PermitFilter
		wantIDs []string
	}{
		{
			name:    "all",
			filter:  entity.PermitFilter{Status: entity.FilterAll, Owner: entity.FilterAll, Project: entity.FilterAll},
			wantIDs: []string{"P-101", "P-102", "P-103", "P-104"},
		},
		{
			name:    "owner",
			filter:  entity.PermitFilter{Owner: "Sarah Jenkins"},
			wantIDs: []string{"P-101", "P-103"},
		},
		{
			name:    "overdue",
			filter:  entity.PermitFilter{Status: "Overdue", Owner: entity.FilterAll, Project: entity.FilterAll},
			wantIDs: []string{"P-104"},
		},
		{
			name:    "nothing matches",
			filter:  entity.PermitFilter{Status: "Compliant", Owner: "Mike Ross"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)
			ts := NewTestService(t)

			d, err := ts.s.Dashboard(context.Background(), tt.filter)
			r.NoError(err)

			r.Equal(referenceDate, d.Today)
			r.Equal(entity.KPIs{ActivePermits: 4, DueWithin30Days: 0, OverdueConditions: 1, MissingEvidence: 3}, d.KPIs)

			ids := make([]string, 0, len(d.Permits))
			for _, p := range d.Permits {
				ids = append(ids, p.ID)
			}

			r.Equal(tt.wantIDs, ids)
			r.Equal(len(tt.wantIDs) == 0, d.Empty)
			r.Equal([]string{"David Chen", "Mike Ross", "Sarah Jenkins"}, d.Options.Owners)
		})
	}
}

func TestService_CreatePermit(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), eventOf(entity.EventPermitCreated))

	p, err := ts.s.CreatePermit(ctx, entity.PermitDraft{
		Name:    entity.Ptr("Grading Permit"),
		Project: entity.Ptr("Hillside Homes"),
	})
	r.NoError(err)
	r.True(strings.HasPrefix(p.ID, entity.PermitIDPrefix))
	r.Equal("Sarah Jenkins", p.Owner)
	r.Equal(entity.StatusPending, p.Status)
	r.Equal(entity.DefaultJurisdiction, p.Jurisdiction)

	permits, err := ts.s.ListPermits(ctx, entity.PermitFilter{})
	r.NoError(err)
	r.Len(permits, 5)
	r.Equal(p.ID, permits[0].ID)

	_, err = ts.s.CreatePermit(ctx, entity.PermitDraft{Name: entity.Ptr("No project")})
	r.ErrorIs(err, entity.ErrIncorrectRequestBody)
}

func TestService_CreatePermit_AuthenticatedOwner(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any())

	ctx := entity.SetUserToContext(context.Background(), entity.User{ID: "u-1", Name: "Dana Park"})

	p, err := ts.s.CreatePermit(ctx, entity.PermitDraft{
		Name:    entity.Ptr("Grading Permit"),
		Project: entity.Ptr("Hillside Homes"),
	})
	r.NoError(err)
	r.Equal("Dana Park", p.Owner)
}

func TestService_DeletePermit(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	err := ts.s.DeletePermit(ctx, "P-101", false)
	r.ErrorIs(err, entity.ErrConfirmationRequired)

	_, err = ts.s.Permit(ctx, "P-101")
	r.NoError(err)

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), eventOf(entity.EventPermitDeleted))

	err = ts.s.DeletePermit(ctx, "P-101", true)
	r.NoError(err)

	_, err = ts.s.Permit(ctx, "P-101")
	r.ErrorIs(err, entity.ErrNotFound)

	conditions, err := ts.s.ListConditions(ctx, "all")
	r.NoError(err)
	r.Len(conditions, 2)
	r.Equal("C-102-A", conditions[0].ID)
	r.Equal("C-103-A", conditions[1].ID)

	evidence, err := ts.s.ListEvidence(ctx)
	r.NoError(err)
	r.Len(evidence, 1)

	err = ts.s.DeletePermit(ctx, "P-101", true)
	r.ErrorIs(err, entity.ErrNotFound)

	r.Equal(entity.ActivityWarn, ts.s.Activity(ctx)[0].Level)
}

func TestService_ExportPermitsCSV(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	f, err := ts.s.ExportPermitsCSV(context.Background(), entity.PermitFilter{Owner: "Mike Ross"})
	r.NoError(err)
	r.Equal("FCS_Permits_Export_2024-05-15.csv", f.Name)

	lines := strings.Split(string(f.Data), "\n")
	r.Len(lines, 2)
	r.Equal("ID,Name,Project,Jurisdiction,Type,Status,Expiration Date,Owner", lines[0])
	r.Equal(`P-102,"NPDES General Permit","Riverside Industrial Park","State Water Board",Water Quality,At Risk,2024-06-01,Mike Ross`, lines[1])
}

func TestService_PermitDocument(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("record", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)
		ts := NewTestService(t)

		f, err := ts.s.PermitDocument(ctx, "P-103")
		r.NoError(err)
		r.Equal("Permit_P-103_Record.txt", f.Name)
		r.Contains(string(f.Data), "Endangered Species Incidental Take")
	})

	t.Run("remote", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)
		ts := NewTestService(t)

		ts.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any())

		p, err := ts.s.Permit(ctx, "P-101")
		r.NoError(err)

		p.DocumentURL = "https://docs.example.com/aqmd.pdf"
		_, err = ts.s.UpdatePermit(ctx, p)
		r.NoError(err)

		ts.fetcher.EXPECT().Fetch(gomock.Any(), "https://docs.example.com/aqmd.pdf").
			Return(entity.DownloadedFile{Name: "aqmd.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}, nil)

		f, err := ts.s.PermitDocument(ctx, "P-101")
		r.NoError(err)
		r.Equal("AQMD_Construction_Auth_2023.pdf", f.Name)
		r.Equal([]byte("%PDF"), f.Data)
	})

	t.Run("fetch failure", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)
		ts := NewTestService(t)

		ts.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any())

		p, err := ts.s.Permit(ctx, "P-102")
		r.NoError(err)

		p.DocumentURL = "https://docs.example.com/missing.pdf"
		_, err = ts.s.UpdatePermit(ctx, p)
		r.NoError(err)

		ts.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(entity.DownloadedFile{}, entity.ErrNotFound)

		_, err = ts.s.PermitDocument(ctx, "P-102")
		r.ErrorIs(err, entity.ErrNotFound)
	})
}

func TestService_DocumentURL_Rejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rejected := []string{
		"http://127.0.0.1:8080/admin",
		"http://169.254.169.254/latest/meta-data/iam/security-credentials/",
		"http://localhost/internal.pdf",
		"file:///etc/passwd",
		"https://docs.example.com.evil.test/aqmd.pdf",
		"https://storage.other.test/aqmd.pdf",
	}

	for _, raw := range rejected {
		t.Run(raw, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)
			ts := NewTestService(t)

			_, err := ts.s.CreatePermit(ctx, entity.PermitDraft{
				Name:        entity.Ptr("Dust Control Plan"),
				Project:     entity.Ptr("North Creek Expansion"),
				DocumentURL: entity.Ptr(raw),
			})
			r.ErrorIs(err, entity.ErrIncorrectRequestBody)

			p, err := ts.s.Permit(ctx, "P-101")
			r.NoError(err)

			p.DocumentURL = raw
			_, err = ts.s.UpdatePermit(ctx, p)
			r.ErrorIs(err, entity.ErrIncorrectRequestBody)

			// rows written before the host list changed are refused at read time
			r.NoError(ts.repo.UpdatePermit(ctx, p))

			_, err = ts.s.PermitDocument(ctx, "P-101")
			r.ErrorIs(err, entity.ErrIncorrectRequestBody)
		})
	}

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)
		ts := NewTestService(t)

		ts.publisher.EXPECT().PublishEvent(gomock.Any(), eventOf(entity.EventPermitCreated)).Times(2)

		for _, raw := range []string{"https://DOCS.example.com/aqmd.pdf", blob.Ref("permits/aqmd.pdf")} {
			p, err := ts.s.CreatePermit(ctx, entity.PermitDraft{
				Name:        entity.Ptr("Dust Control Plan"),
				Project:     entity.Ptr("North Creek Expansion"),
				DocumentURL: entity.Ptr(raw),
			})
			r.NoError(err)
			r.Equal(raw, p.DocumentURL)
		}
	})
}

func TestService_AnalyzeDocument(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	_, err := ts.s.AnalyzeDocument(ctx, entity.UploadedFile{Name: "scan.png", Data: []byte("x")})
	r.ErrorIs(err, entity.ErrUnsupportedFile)

	draft, err := ts.s.AnalyzeDocument(ctx, entity.UploadedFile{Name: "NPDES_2024.pdf", Data: []byte("%PDF-1.7")})
	r.NoError(err)
	r.Equal("Extracted from NPDES_2024.pdf", *draft.Description)
	r.Equal("NPDES_2024.pdf", *draft.DocumentName)

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any())

	p, err := ts.s.CreatePermit(ctx, draft)
	r.NoError(err)

	f, err := ts.s.PermitDocument(ctx, p.ID)
	r.NoError(err)
	r.Equal([]byte("%PDF-1.7"), f.Data)
	r.Equal("NPDES_2024.pdf", f.Name)
}

func TestService_AnalyzeDocument_Canceled(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ctrl := gomock.NewController(t)

	s := service.New(
		repository.NewMemory(seed.Default()),
		blob.NewMemory(),
		mocks.NewMockFetcher(ctrl),
		mocks.NewMockProvider(ctrl),
		nil,
		nil,
		nil,
		nil,
		service.Config{ReferenceDate: referenceDate, AnalysisDelay: time.Hour},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.AnalyzeDocument(ctx, entity.UploadedFile{Name: "permit.docx", Data: []byte("doc")})
	r.ErrorIs(err, context.Canceled)
}

func TestService_UploadEvidence(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	before, err := ts.s.ListEvidence(ctx)
	r.NoError(err)

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), eventOf(entity.EventEvidenceUploaded))

	e, err := ts.s.UploadEvidence(ctx, "C-102-A", entity.UploadedFile{
		Name: "wet_weather_samples.pdf",
		Data: []byte("%PDF"),
	}, []string{"sampling", "uploaded", " "})
	r.NoError(err)
	r.Equal("C-102-A", e.ConditionID)
	r.Equal("Sarah Jenkins", e.UploadedBy)
	r.Equal(referenceDate, e.UploadDate)
	r.Equal([]string{"uploaded", "condition-compliance", "sampling"}, e.Tags)
	r.Equal("application/pdf", e.ContentType)

	c, err := ts.s.Condition(ctx, "C-102-A")
	r.NoError(err)
	r.True(c.EvidenceUploaded)
	r.Equal(entity.StatusCompliant, c.Status)
	r.Equal(entity.RiskLow, c.RiskLevel)

	after, err := ts.s.ListEvidence(ctx)
	r.NoError(err)
	r.Len(after, len(before)+1)
	r.Equal(e.ID, after[0].ID)

	f, err := ts.s.EvidenceFile(ctx, e.ID)
	r.NoError(err)
	r.Equal([]byte("%PDF"), f.Data)
	r.Equal("wet_weather_samples.pdf", f.Name)
}

func TestService_UploadEvidence_Rejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name        string
		conditionID string
		file        entity.UploadedFile
		wantErr     error
	}{
		{
			name:        "extension",
			conditionID: "C-102-A",
			file:        entity.UploadedFile{Name: "samples.exe", Data: []byte("MZ")},
			wantErr:     entity.ErrUnsupportedFile,
		},
		{
			name:        "no name",
			conditionID: "C-102-A",
			file:        entity.UploadedFile{Data: []byte("x")},
			wantErr:     entity.ErrIncorrectRequestBody,
		},
		{
			name:        "unknown condition",
			conditionID: "C-999",
			file:        entity.UploadedFile{Name: "photo.JPG", Data: []byte("x")},
			wantErr:     entity.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)
			ts := NewTestService(t)

			_, err := ts.s.UploadEvidence(ctx, tt.conditionID, tt.file, nil)
			r.ErrorIs(err, tt.wantErr)

			evidence, err := ts.s.ListEvidence(ctx)
			r.NoError(err)
			r.Len(evidence, 1)
		})
	}
}

func TestService_SubmitEvidence(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), eventOf(entity.EventEvidenceUploaded))

	e, err := ts.s.SubmitEvidence(ctx, service.EvidenceSubmission{
		ConditionID: "C-103-A",
		FileName:    "survey.pdf",
		UploadedBy:  "Field Team",
	})
	r.NoError(err)
	r.Equal("Field Team", e.UploadedBy)
	r.False(e.HasFile())

	_, err = ts.s.EvidenceFile(ctx, e.ID)
	r.ErrorIs(err, entity.ErrNotFound)

	_, err = ts.s.SubmitEvidence(ctx, service.EvidenceSubmission{FileName: "survey.pdf"})
	r.ErrorIs(err, entity.ErrIncorrectRequestBody)
}

func TestService_UpdateAndDeleteEvidence(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Times(2)

	e, err := ts.s.UploadEvidence(ctx, "C-101-B", entity.UploadedFile{Name: "sensors.png", Data: []byte("png")}, nil)
	r.NoError(err)

	updated, err := ts.s.UpdateEvidence(ctx, e.ID, "sensor_install.png", []string{"photo"})
	r.NoError(err)
	r.Equal("sensor_install.png", updated.FileName)
	r.Equal([]string{"photo"}, updated.Tags)
	r.Equal(e.BlobKey, updated.BlobKey)

	_, err = ts.s.UpdateEvidence(ctx, e.ID, " ", nil)
	r.ErrorIs(err, entity.ErrIncorrectRequestBody)

	err = ts.s.DeleteEvidence(ctx, e.ID)
	r.NoError(err)

	_, err = ts.blob.Get(ctx, e.BlobKey)
	r.ErrorIs(err, entity.ErrNotFound)

	c, err := ts.s.Condition(ctx, "C-101-B")
	r.NoError(err)
	r.True(c.EvidenceUploaded)
}

func TestService_Conditions(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	overdue, err := ts.s.ListConditions(ctx, "Overdue")
	r.NoError(err)
	r.Len(overdue, 1)
	r.Equal("C-102-A", overdue[0].ID)

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), eventOf(entity.EventConditionCreated))

	c, err := ts.s.CreateCondition(ctx, entity.ConditionDraft{Description: entity.Ptr("Post signage")})
	r.NoError(err)
	r.Equal("P-101", c.PermitID)
	r.Equal(referenceDate, c.DueDate)
	r.Equal(entity.StatusPending, c.Status)
	r.Equal(entity.RiskLow, c.RiskLevel)
	r.True(c.EvidenceRequired)

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), eventOf(entity.EventConditionUpdated))

	c.EvidenceUploaded = true
	c.Status = entity.StatusOnTrack

	updated, err := ts.s.UpdateCondition(ctx, c)
	r.NoError(err)
	r.False(updated.EvidenceUploaded)
	r.Equal(entity.StatusOnTrack, updated.Status)

	c.RiskLevel = "Extreme"
	_, err = ts.s.UpdateCondition(ctx, c)
	r.ErrorIs(err, entity.ErrIncorrectRequestBody)

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), eventOf(entity.EventConditionDeleted))

	err = ts.s.DeleteCondition(ctx, c.ID)
	r.NoError(err)

	_, err = ts.s.Condition(ctx, c.ID)
	r.ErrorIs(err, entity.ErrNotFound)
}

func TestService_Report(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	weekly, err := ts.s.Report(ctx, entity.ReportWeekly)
	r.NoError(err)
	r.True(weekly.Empty)

	gap, err := ts.s.Report(ctx, entity.ReportGap)
	r.NoError(err)
	r.Len(gap.Items, 3)

	_, err = ts.s.Report(ctx, "yearly")
	r.ErrorIs(err, entity.ErrIncorrectRequestBody)

	f, err := ts.s.ReportCSV(ctx, entity.ReportGap)
	r.NoError(err)
	r.Equal("FCS_Gap_Report_2024-05-15.csv", f.Name)
	r.Len(strings.Split(string(f.Data), "\n"), 4)
}

func TestService_UpdateAlertSettings(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	a, err := ts.s.UpdateAlertSettings(ctx, entity.AlertSettings{Enabled: false, Remind30: true, Remind7: true, WeeklyDigest: true})
	r.NoError(err)
	r.False(a.Enabled)

	a, err = ts.s.UpdateAlertSettings(ctx, entity.AlertSettings{Enabled: false, Remind30: false})
	r.NoError(err)
	r.True(a.Remind30)
	r.True(a.WeeklyDigest)

	a, err = ts.s.UpdateAlertSettings(ctx, entity.AlertSettings{Enabled: true, Remind7: true})
	r.NoError(err)
	r.Equal(entity.AlertSettings{Enabled: true, Remind7: true}, a)

	stored, err := ts.s.AlertSettings(ctx)
	r.NoError(err)
	r.Equal(a, stored)
}

func TestService_UpdateProfile(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	p, err := ts.s.Profile(ctx)
	r.NoError(err)

	p.Role = "Director"
	_, err = ts.s.UpdateProfile(ctx, p)
	r.NoError(err)

	stored, err := ts.s.Profile(ctx)
	r.NoError(err)
	r.Equal("Director", stored.Role)

	p.Name = ""
	_, err = ts.s.UpdateProfile(ctx, p)
	r.ErrorIs(err, entity.ErrIncorrectRequestBody)
}

func TestService_Ask(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	ts.provider.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req entity.ChatRequest) (string, error) {
			r.Equal("List all Overdue conditions", req.Message)
			r.Len(req.History, 1)
			r.Equal(assistant.Greeting, req.History[0].Content)
			r.Contains(req.SystemInstruction, "C-102-A")
			r.Contains(req.SystemInstruction, referenceDate)

			return "Overdue:\n- C-102-A Conduct wet weather sampling", nil
		})

	reply, err := ts.s.Ask(ctx, "", "List all Overdue conditions")
	r.NoError(err)
	r.False(reply.Failed)
	r.Equal(entity.ChatRoleModel, reply.Message.Role)
	r.Len(reply.Lines, 2)
	r.True(reply.Lines[1].Bullet)

	transcript := ts.s.Transcript(ctx, "")
	r.Equal(assistant.DefaultSession, transcript.Session)
	r.Len(transcript.Messages, 3)
	r.False(transcript.Busy)
	r.Empty(transcript.Suggestions)

	_, err = ts.s.Ask(ctx, "", "   ")
	r.ErrorIs(err, entity.ErrIncorrectRequestBody)

	r.NoError(ts.s.ResetConversation(ctx, ""))
	r.Len(ts.s.Transcript(ctx, "").Messages, 1)
}

func TestService_Ask_ProviderFailure(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	ts.provider.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("", errors.New("connection refused"))

	reply, err := ts.s.Ask(ctx, "s-1", "Which permits are At Risk?")
	r.NoError(err)
	r.True(reply.Failed)
	r.Equal(assistant.Apology, reply.Message.Content)

	ts.provider.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("  ", nil)

	reply, err = ts.s.Ask(ctx, "s-1", "Try again")
	r.NoError(err)
	r.False(reply.Failed)
	r.Equal(assistant.EmptyReply, reply.Message.Content)

	r.Len(ts.s.Transcript(ctx, "s-1").Messages, 5)
	r.Len(ts.s.Transcript(ctx, "s-2").Messages, 1)
}

func TestService_Ask_Busy(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})

	ts.provider.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, entity.ChatRequest) (string, error) {
			close(started)
			<-release

			return "done", nil
		})

	done := make(chan error)

	go func() {
		_, err := ts.s.Ask(ctx, "", "first")
		done <- err
	}()

	<-started

	_, err := ts.s.Ask(ctx, "", "second")
	r.ErrorIs(err, entity.ErrAssistantBusy)
	r.True(ts.s.Transcript(ctx, "").Busy)
	r.ErrorIs(ts.s.ResetConversation(ctx, ""), entity.ErrAssistantBusy)

	close(release)
	r.NoError(<-done)
	r.False(ts.s.Transcript(ctx, "").Busy)
}

func TestService_Ask_ProviderPanic(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	ts.provider.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, entity.ChatRequest) (string, error) {
			panic("provider exploded")
		})

	r.Panics(func() {
		_, _ = ts.s.Ask(ctx, "s-1", "first")
	})

	transcript := ts.s.Transcript(ctx, "s-1")
	r.False(transcript.Busy)
	r.Len(transcript.Messages, 3)
	r.Equal(assistant.Apology, transcript.Messages[2].Content)

	ts.provider.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("back online", nil)

	reply, err := ts.s.Ask(ctx, "s-1", "second")
	r.NoError(err)
	r.Equal("back online", reply.Message.Content)
	r.NoError(ts.s.ResetConversation(ctx, "s-1"))
}

func TestService_Transcript_DoesNotCreateSessions(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t, withConfig(func(cfg *service.Config) {
		cfg.MaxSessions = 1
	}))
	ctx := context.Background()

	ts.provider.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("hi", nil)

	_, err := ts.s.Ask(ctx, "kept", "hello")
	r.NoError(err)

	for i := range 5 {
		id := fmt.Sprintf("stranger-%d", i)

		transcript := ts.s.Transcript(ctx, id)
		r.Equal(id, transcript.Session)
		r.Len(transcript.Messages, 1)
		r.Equal(assistant.Greeting, transcript.Messages[0].Content)
		r.NoError(ts.s.ResetConversation(ctx, id))
	}

	r.Len(ts.s.Transcript(ctx, "kept").Messages, 3)
}

func TestService_SendWeeklyDigest(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	ts.notifier.EXPECT().SendNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg entity.Message) error {
			r.Equal(service.JobWeeklyDigest, msg.Type)
			r.Equal("Weekly Owner Digest", msg.Subject)
			r.Equal([]string{"s.jenkins@firstcarbonsolutions.com"}, msg.Recipients)
			r.Contains(msg.Message, "No immediate tasks due this week")

			return nil
		})

	r.NoError(ts.s.SendWeeklyDigest(ctx))

	_, err := ts.s.UpdateAlertSettings(ctx, entity.AlertSettings{Enabled: true, WeeklyDigest: false})
	r.NoError(err)

	r.NoError(ts.s.SendWeeklyDigest(ctx))
}

func TestService_SendReminders(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	r.NoError(ts.s.SendReminders(ctx))

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any())

	_, err := ts.s.CreateCondition(ctx, entity.ConditionDraft{
		PermitID:    entity.Ptr("P-104"),
		Description: entity.Ptr("Notify neighbors of night pour"),
		DueDate:     entity.Ptr("2024-05-20"),
	})
	r.NoError(err)

	var subjects []string

	ts.notifier.EXPECT().SendNotification(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg entity.Message) error {
			subjects = append(subjects, msg.Subject)
			return nil
		}).Times(2)

	r.NoError(ts.s.SendReminders(ctx))
	r.Equal([]string{
		"1 condition(s) due within 30 days",
		"1 condition(s) due within 7 days",
	}, subjects)

	_, err = ts.s.UpdateAlertSettings(ctx, entity.AlertSettings{Enabled: true, Remind30: true})
	r.NoError(err)

	ts.notifier.EXPECT().SendNotification(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	r.Error(ts.s.SendReminders(ctx))
}

func TestService_RefreshStatuses(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), eventOf(entity.EventStatusesRefreshed))

	r.NoError(ts.s.RefreshStatuses(ctx))

	c, err := ts.s.Condition(ctx, "C-101-B")
	r.NoError(err)
	r.Equal(entity.StatusOverdue, c.Status)

	c, err = ts.s.Condition(ctx, "C-101-A")
	r.NoError(err)
	r.Equal(entity.StatusOnTrack, c.Status)

	r.NoError(ts.s.RefreshStatuses(ctx))
}

// uploadingRepo records an evidence upload for every condition right before
// the status changes are written.
type uploadingRepo struct {
	service.Repository
	t *testing.T
}

func (r uploadingRepo) SetConditionStatuses(ctx context.Context, changes []entity.StatusChange) (int, error) {
	for _, sc := range changes {
		_, err := r.Repository.RecordEvidenceUpload(ctx, sc.ID, entity.Evidence{
			ID:         entity.NewEvidenceID(),
			FileName:   "late-upload.pdf",
			UploadedBy: "Mike Ross",
			UploadDate: referenceDate,
		})
		require.NoError(r.t, err)
	}

	return r.Repository.SetConditionStatuses(ctx, changes)
}

func TestService_RefreshStatuses_ConcurrentUpload(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t, withRepo(func(repo service.Repository) service.Repository {
		return uploadingRepo{Repository: repo, t: t}
	}))
	ctx := context.Background()

	r.NoError(ts.s.RefreshStatuses(ctx))

	conditions, err := ts.s.ListConditions(ctx, "")
	r.NoError(err)

	for _, c := range conditions {
		if c.EvidenceUploaded {
			r.Equal(entity.StatusCompliant, c.Status, "condition %s", c.ID)
		}
	}

	c, err := ts.s.Condition(ctx, "C-101-B")
	r.NoError(err)
	r.True(c.EvidenceUploaded)
	r.Equal(entity.StatusCompliant, c.Status)
}

func TestService_Activity(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)
	ctx := context.Background()

	ts.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).AnyTimes()

	for i := range 205 {
		_, err := ts.s.CreateCondition(ctx, entity.ConditionDraft{Description: entity.Ptr("c" + string(rune('a'+i%26)))})
		r.NoError(err)
	}

	entries := ts.s.Activity(ctx)
	r.Len(entries, 200)
	r.True(entries[0].Time.After(entries[199].Time) || entries[0].Time.Equal(entries[199].Time))
	r.Equal("conditions", entries[0].Source)
}
