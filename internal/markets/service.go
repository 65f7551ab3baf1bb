package markets

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"propvest-backend/internal/models"
)

var ErrInvalidLocationType = errors.New("Invalid location type")

// Service answers the market-lookup and rollup queries. Aggregate stats are
// cached in Redis because they scan the whole catalog; lookups hit the
// database directly. A nil Redis client just disables the cache.
type Service struct {
	DB       *gorm.DB
	Rdb      *redis.Client
	CacheTTL time.Duration
}

type CityCount struct {
	City          string `gorm:"column:city" json:"city"`
	State         string `gorm:"column:state" json:"state"`
	PropertyCount int64  `gorm:"column:property_count" json:"property_count"`
}

type ZipCount struct {
	ZipCode       string `gorm:"column:zip_code" json:"zip_code"`
	City          string `gorm:"column:city" json:"city"`
	State         string `gorm:"column:state" json:"state"`
	PropertyCount int64  `gorm:"column:property_count" json:"property_count"`
}

type StateCount struct {
	State         string `gorm:"column:state" json:"state"`
	PropertyCount int64  `gorm:"column:property_count" json:"property_count"`
}

// Cities lists available cities with property counts, optionally scoped to
// one state.
func (s *Service) Cities(ctx context.Context, state string) ([]CityCount, error) {
	q := s.DB.WithContext(ctx).Model(&models.Property{}).
		Select("city, state, COUNT(*) AS property_count").
		Group("city").Group("state").
		Order("state").Order("city")
	if state != "" {
		q = q.Where("LOWER(state) = LOWER(?)", state)
	}
	var rows []CityCount
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Zipcodes lists available zip codes, optionally filtered by city and state.
func (s *Service) Zipcodes(ctx context.Context, city, state string) ([]ZipCount, error) {
	q := s.DB.WithContext(ctx).Model(&models.Property{}).
		Select("zip_code, city, state, COUNT(*) AS property_count").
		Group("zip_code").Group("city").Group("state").
		Order("state").Order("city").Order("zip_code")
	if city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}
	if state != "" {
		q = q.Where("LOWER(state) = LOWER(?)", state)
	}
	var rows []ZipCount
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// States lists states with property counts.
func (s *Service) States(ctx context.Context) ([]StateCount, error) {
	var rows []StateCount
	err := s.DB.WithContext(ctx).Model(&models.Property{}).
		Select("state, COUNT(*) AS property_count").
		Group("state").Order("state").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MarketStat is one rollup row: average price, rent, and audited return
// metrics for a location.
type MarketStat struct {
	Location      string  `gorm:"column:location" json:"location"`
	State         string  `gorm:"column:state" json:"state,omitempty"`
	PropertyCount int64   `gorm:"column:property_count" json:"property_count"`
	AvgListPrice  float64 `gorm:"column:avg_list_price" json:"avg_list_price"`
	AvgRent       float64 `gorm:"column:avg_rent" json:"avg_rent"`
	AvgCapRate    float64 `gorm:"column:avg_cap_rate" json:"avg_cap_rate"`
	AvgRanking    float64 `gorm:"column:avg_ranking" json:"avg_ranking"`
}

var statsGroupColumns = map[string]string{
	"city":    "properties.city",
	"zipcode": "properties.zip_code",
	"state":   "properties.state",
}

// Stats rolls up market statistics grouped by city, zipcode, or state.
// Served from cache when fresh.
func (s *Service) Stats(ctx context.Context, locationType string) ([]MarketStat, error) {
	groupCol, ok := statsGroupColumns[locationType]
	if !ok {
		return nil, ErrInvalidLocationType
	}

	cacheKey := "markets:stats:" + locationType
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	sel := groupCol + ` AS location, COUNT(*) AS property_count,
AVG(properties.list_price) AS avg_list_price,
AVG(properties.estimated_rent) AS avg_rent,
AVG(property_audits.cap_rate) AS avg_cap_rate,
AVG(property_audits.investment_ranking) AS avg_ranking`

	q := s.DB.WithContext(ctx).Model(&models.Property{}).
		Joins("LEFT JOIN property_audits ON property_audits.property_id = properties.id").
		Group(groupCol).Order(groupCol)

	// City and zip rollups keep the state column for disambiguation.
	if locationType != "state" {
		sel += ", properties.state AS state"
		q = q.Group("properties.state")
	}

	var rows []MarketStat
	if err := q.Select(sel).Scan(&rows).Error; err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, rows)
	return rows, nil
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]MarketStat, bool) {
	if s.Rdb == nil {
		return nil, false
	}
	raw, err := s.Rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("Stats cache read failed")
		}
		return nil, false
	}
	var rows []MarketStat
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (s *Service) cacheSet(ctx context.Context, key string, rows []MarketStat) {
	if s.Rdb == nil {
		return
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := s.Rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Stats cache write failed")
	}
}
