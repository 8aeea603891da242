package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"diocese-attendance-backend/config"
	"diocese-attendance-backend/db/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrNoData signals that the query matched no records; a not-found
// condition, not a server error.
var ErrNoData = errors.New("no attendance records match the given filters")

// defaultRangeDays is the analytics window when no start date is supplied.
const defaultRangeDays = 730

// AnalyticsFilter is the analytics query: an inclusive date range plus an
// optional hierarchy filter. Only the most specific of the three ids is
// applied (congregation over parish over archdeaconry).
type AnalyticsFilter struct {
	StartDate      time.Time
	EndDate        time.Time
	ArchdeaconryID string
	ParishID       string
	CongregationID string
}

// Define a minimal interface for what aggregation needs
type RecordSource interface {
	GetRecordsInRange(start, end time.Time, archdeaconryID, parishID, congregationID string) ([]models.AttendanceRecord, error)
}

type OverallStats struct {
	TotalCollection  decimal.Decimal `json:"total_collection"`
	AvgAttendance    float64         `json:"avg_attendance"`
	GrowthRate       float64         `json:"growth_rate"`
	BankedPercentage float64         `json:"banked_percentage"`
}

type TimeSeriesPoint struct {
	Month           string          `json:"month"`
	AvgAttendance   float64         `json:"avg_attendance"`
	TotalCollection decimal.Decimal `json:"total_collection"`
	AvgSundaySchool float64         `json:"avg_sunday_school"`
	AvgAdults       float64         `json:"avg_adults"`
}

type HierarchyStats struct {
	Archdeaconry    string          `json:"archdeaconry"`
	Parish          string          `json:"parish"`
	Congregation    string          `json:"congregation"`
	AvgAttendance   float64         `json:"avg_attendance"`
	TotalCollection decimal.Decimal `json:"total_collection"`
	Records         int             `json:"records"`
}

type CongregationCollection struct {
	Congregation    string          `json:"congregation"`
	TotalCollection decimal.Decimal `json:"total_collection"`
}

type MonthlyCollection struct {
	Month           string          `json:"month"`
	TotalCollection decimal.Decimal `json:"total_collection"`
}

type FinancialStats struct {
	BankedPercentage float64                  `json:"banked_percentage"`
	TopCongregations []CongregationCollection `json:"top_congregations"`
	MonthlyTrend     []MonthlyCollection      `json:"monthly_trend"`
}

type SegmentationStats struct {
	AvgSundaySchool float64 `json:"avg_sunday_school"`
	AvgAdults       float64 `json:"avg_adults"`
	AvgYouth        float64 `json:"avg_youth"`
	AvgDiffAbled    float64 `json:"avg_diff_abled"`
	SundaySchoolPct float64 `json:"sunday_school_pct"`
	AdultsPct       float64 `json:"adults_pct"`
	YouthPct        float64 `json:"youth_pct"`
	DiffAbledPct    float64 `json:"diff_abled_pct"`
}

type AnalyticsResponse struct {
	Overall                OverallStats      `json:"overall"`
	TimeSeries             []TimeSeriesPoint `json:"time_series"`
	Hierarchy              []HierarchyStats  `json:"hierarchy"`
	Financial              FinancialStats    `json:"financial"`
	AttendanceSegmentation SegmentationStats `json:"attendance_segmentation"`
}

type AnalyticsService struct {
	records RecordSource
}

func NewAnalyticsService(records RecordSource) *AnalyticsService {
	return &AnalyticsService{records: records}
}

// GetAnalytics loads the records matching the filter and computes the full
// set of derived statistics. Returns ErrNoData when nothing matches. A panic
// during computation is recovered, logged, and surfaced as a plain error so
// the caller can answer with a generic failure.
func (s *AnalyticsService) GetAnalytics(filter AnalyticsFilter) (response *AnalyticsResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			config.Logger.Error("Analytics computation panicked", zap.Any("cause", r))
			response = nil
			err = fmt.Errorf("analytics computation failed")
		}
	}()

	if filter.EndDate.IsZero() {
		filter.EndDate = time.Now()
	}
	if filter.StartDate.IsZero() {
		filter.StartDate = filter.EndDate.AddDate(0, 0, -defaultRangeDays)
	}

	// Most specific hierarchy filter wins; the others are dropped.
	archID, parishID, congID := filter.ArchdeaconryID, filter.ParishID, filter.CongregationID
	if congID != "" {
		archID, parishID = "", ""
	} else if parishID != "" {
		archID = ""
	}

	records, err := s.records.GetRecordsInRange(filter.StartDate, filter.EndDate, archID, parishID, congID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	return &AnalyticsResponse{
		Overall:                computeOverall(records),
		TimeSeries:             computeTimeSeries(records),
		Hierarchy:              computeHierarchy(records),
		Financial:              computeFinancial(records),
		AttendanceSegmentation: computeSegmentation(records),
	}, nil
}

func computeOverall(records []models.AttendanceRecord) OverallStats {
	totalCollection := decimal.Zero
	totalBanked := decimal.Zero
	attendanceSum := 0
	for i := range records {
		totalCollection = totalCollection.Add(records[i].TotalCollection)
		totalBanked = totalBanked.Add(records[i].Banked)
		attendanceSum += records[i].TotalAttendance()
	}

	return OverallStats{
		TotalCollection:  totalCollection.Round(2),
		AvgAttendance:    round1(float64(attendanceSum) / float64(len(records))),
		GrowthRate:       computeGrowthRate(records),
		BankedPercentage: bankedPercentage(totalBanked, totalCollection),
	}
}

// computeGrowthRate compares the earliest record against the latest one in
// date order: 100 * (last - first) / first, rounded to 2 decimals. This is
// deliberately a two-point comparison of single weekly values, not a period
// average. Zero when the set is empty or the first attendance is zero.
func computeGrowthRate(records []models.AttendanceRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sorted := make([]models.AttendanceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SundayDate.Before(sorted[j].SundayDate)
	})

	first := sorted[0].TotalAttendance()
	last := sorted[len(sorted)-1].TotalAttendance()
	if first == 0 {
		return 0
	}
	return round2(100 * float64(last-first) / float64(first))
}

// bankedPercentage is 100 * banked / collection, zero-guarded so an
// all-zero collection never produces NaN or Inf in the payload.
func bankedPercentage(banked, collection decimal.Decimal) float64 {
	if collection.IsZero() {
		return 0
	}
	pct, _ := banked.Div(collection).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}

type monthAccumulator struct {
	attendanceSum   int
	sundaySchoolSum int
	adultsSum       int
	collection      decimal.Decimal
	count           int
}

func computeTimeSeries(records []models.AttendanceRecord) []TimeSeriesPoint {
	byMonth := make(map[string]*monthAccumulator)
	for i := range records {
		month := records[i].SundayDate.Format("2006-01")
		acc, ok := byMonth[month]
		if !ok {
			acc = &monthAccumulator{collection: decimal.Zero}
			byMonth[month] = acc
		}
		acc.attendanceSum += records[i].TotalAttendance()
		acc.sundaySchoolSum += records[i].SundaySchool
		acc.adultsSum += records[i].Adults
		acc.collection = acc.collection.Add(records[i].TotalCollection)
		acc.count++
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	series := make([]TimeSeriesPoint, 0, len(months))
	for _, month := range months {
		acc := byMonth[month]
		series = append(series, TimeSeriesPoint{
			Month:           month,
			AvgAttendance:   round1(float64(acc.attendanceSum) / float64(acc.count)),
			TotalCollection: acc.collection.Round(2),
			AvgSundaySchool: round1(float64(acc.sundaySchoolSum) / float64(acc.count)),
			AvgAdults:       round1(float64(acc.adultsSum) / float64(acc.count)),
		})
	}
	return series
}

type hierarchyAccumulator struct {
	archdeaconry  string
	parish        string
	congregation  string
	attendanceSum int
	collection    decimal.Decimal
	count         int
}

func computeHierarchy(records []models.AttendanceRecord) []HierarchyStats {
	byTriple := make(map[string]*hierarchyAccumulator)
	order := []string{}
	for i := range records {
		rec := &records[i]
		key := rec.ArchdeaconryID.String() + "/" + rec.ParishID.String() + "/" + rec.CongregationID.String()
		acc, ok := byTriple[key]
		if !ok {
			acc = &hierarchyAccumulator{
				archdeaconry: archdeaconryName(rec),
				parish:       parishName(rec),
				congregation: congregationName(rec),
				collection:   decimal.Zero,
			}
			byTriple[key] = acc
			order = append(order, key)
		}
		acc.attendanceSum += rec.TotalAttendance()
		acc.collection = acc.collection.Add(rec.TotalCollection)
		acc.count++
	}

	stats := make([]HierarchyStats, 0, len(order))
	for _, key := range order {
		acc := byTriple[key]
		stats = append(stats, HierarchyStats{
			Archdeaconry:    acc.archdeaconry,
			Parish:          acc.parish,
			Congregation:    acc.congregation,
			AvgAttendance:   round1(float64(acc.attendanceSum) / float64(acc.count)),
			TotalCollection: acc.collection.Round(2),
			Records:         acc.count,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Archdeaconry != stats[j].Archdeaconry {
			return stats[i].Archdeaconry < stats[j].Archdeaconry
		}
		if stats[i].Parish != stats[j].Parish {
			return stats[i].Parish < stats[j].Parish
		}
		return stats[i].Congregation < stats[j].Congregation
	})
	return stats
}

func archdeaconryName(rec *models.AttendanceRecord) string {
	if rec.Archdeaconry == nil {
		return ""
	}
	return rec.Archdeaconry.Name
}

func parishName(rec *models.AttendanceRecord) string {
	if rec.Parish == nil {
		return ""
	}
	return rec.Parish.Name
}

func congregationName(rec *models.AttendanceRecord) string {
	if rec.Congregation == nil {
		return ""
	}
	return rec.Congregation.Name
}

// topCongregationCount limits the financial ranking output.
const topCongregationCount = 5

func computeFinancial(records []models.AttendanceRecord) FinancialStats {
	totalCollection := decimal.Zero
	totalBanked := decimal.Zero
	byCongregation := make(map[string]*CongregationCollection)
	congregationOrder := []string{}
	byMonth := make(map[string]decimal.Decimal)

	for i := range records {
		rec := &records[i]
		totalCollection = totalCollection.Add(rec.TotalCollection)
		totalBanked = totalBanked.Add(rec.Banked)

		key := rec.CongregationID.String()
		entry, ok := byCongregation[key]
		if !ok {
			entry = &CongregationCollection{
				Congregation:    congregationName(rec),
				TotalCollection: decimal.Zero,
			}
			byCongregation[key] = entry
			congregationOrder = append(congregationOrder, key)
		}
		entry.TotalCollection = entry.TotalCollection.Add(rec.TotalCollection)

		month := rec.SundayDate.Format("2006-01")
		byMonth[month] = byMonth[month].Add(rec.TotalCollection)
	}

	// Rank congregations by summed collection descending; the stable sort
	// keeps ties in first-seen input order.
	ranking := make([]CongregationCollection, 0, len(congregationOrder))
	for _, key := range congregationOrder {
		entry := byCongregation[key]
		entry.TotalCollection = entry.TotalCollection.Round(2)
		ranking = append(ranking, *entry)
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalCollection.GreaterThan(ranking[j].TotalCollection)
	})
	if len(ranking) > topCongregationCount {
		ranking = ranking[:topCongregationCount]
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	trend := make([]MonthlyCollection, 0, len(months))
	for _, month := range months {
		trend = append(trend, MonthlyCollection{Month: month, TotalCollection: byMonth[month].Round(2)})
	}

	return FinancialStats{
		BankedPercentage: bankedPercentage(totalBanked, totalCollection),
		TopCongregations: ranking,
		MonthlyTrend:     trend,
	}
}

func computeSegmentation(records []models.AttendanceRecord) SegmentationStats {
	var sundaySchoolSum, adultsSum, youthSum, diffAbledSum int
	for i := range records {
		sundaySchoolSum += records[i].SundaySchool
		adultsSum += records[i].Adults
		youthSum += records[i].Youth
		diffAbledSum += records[i].DiffAbled
	}
	total := sundaySchoolSum + adultsSum + youthSum + diffAbledSum
	count := float64(len(records))

	share := func(component int) float64 {
		if total == 0 {
			return 0
		}
		return round2(100 * float64(component) / float64(total))
	}

	return SegmentationStats{
		AvgSundaySchool: round1(float64(sundaySchoolSum) / count),
		AvgAdults:       round1(float64(adultsSum) / count),
		AvgYouth:        round1(float64(youthSum) / count),
		AvgDiffAbled:    round1(float64(diffAbledSum) / count),
		SundaySchoolPct: share(sundaySchoolSum),
		AdultsPct:       share(adultsSum),
		YouthPct:        share(youthSum),
		DiffAbledPct:    share(diffAbledSum),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
