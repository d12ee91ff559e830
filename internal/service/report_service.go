package service

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/anyulbade/merchant-dashboard-api/internal/access"
	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

//go:embed templates/report.html
var reportTemplate string

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"money":   money,
	"comma":   func(n int) string { return humanize.Comma(int64(n)) },
	"ago":     humanize.Time,
	"toLower": strings.ToLower,
}).Parse(reportTemplate))

type ReportService struct {
	dashboard *DashboardService
	now       func() time.Time
}

func NewReportService(dashboard *DashboardService) *ReportService {
	return &ReportService{dashboard: dashboard, now: time.Now}
}

type ReportData struct {
	GeneratedAt string                      `json:"generated_at"`
	StoreLabel  string                      `json:"store"`
	Range       string                      `json:"range"`
	Empty       bool                        `json:"empty"`
	Summary     model.Summary               `json:"summary"`
	Failed      int                         `json:"failed_transactions"`
	Series      []model.Bucket              `json:"series"`
	Recent      []model.EnrichedTransaction `json:"recent"`
}

func (s *ReportService) GenerateReport(ctx context.Context, user model.User, store, rangeToken string) (*ReportData, error) {
	sum, err := s.dashboard.GetStoreSummary(ctx, user, store, rangeToken)
	if err != nil {
		return nil, err
	}

	label := sum.Store
	if access.IsAllSelection(label) {
		label = access.AllBranch
	}

	return &ReportData{
		GeneratedAt: s.now().Format("2006-01-02 15:04:05 MST"),
		StoreLabel:  label,
		Range:       sum.Range,
		Empty:       sum.Empty,
		Summary:     sum.Summary,
		Failed:      sum.Summary.FailedTransactions(),
		Series:      sum.Series,
		Recent:      sum.Recent,
	}, nil
}

func (s *ReportService) RenderHTML(data *ReportData) (string, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return humanize.FormatFloat("#,###.##", f)
}
