package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lagourmand/table-booking/internal/core/domain"
	"github.com/lagourmand/table-booking/internal/core/ports"
	"github.com/lagourmand/table-booking/internal/platform/metrics"
)

const availabilityCacheTTL = 30 * time.Second

type TimeSlot struct {
	Time            string `json:"time"`
	Available       bool   `json:"available"`
	TablesAvailable int    `json:"tablesAvailable"`
}

type AvailabilityResult struct {
	Date         string           `json:"date"`
	PartySize    int              `json:"partySize"`
	DayName      string           `json:"dayName"`
	IsOpen       bool             `json:"isOpen"`
	ClosedReason string           `json:"closedReason,omitempty"`
	OpeningHours *domain.DayHours `json:"openingHours,omitempty"`
	Slots        []TimeSlot       `json:"slots"`
}

// AvailabilityService computes per-slot table availability and allocates
// concrete tables for a requested slot. It only reads from the data store.
type AvailabilityService struct {
	restaurantRepo  ports.RestaurantRepository
	tableRepo       ports.TableRepository
	reservationRepo ports.ReservationRepository
	blockedRepo     ports.BlockedSlotRepository
	cache           *redis.Client
	logger          zerolog.Logger
}

func NewAvailabilityService(
	restaurantRepo ports.RestaurantRepository,
	tableRepo ports.TableRepository,
	reservationRepo ports.ReservationRepository,
	blockedRepo ports.BlockedSlotRepository,
	cache *redis.Client,
	logger zerolog.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		restaurantRepo:  restaurantRepo,
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		blockedRepo:     blockedRepo,
		cache:           cache,
		logger:          logger,
	}
}

func AvailabilityCacheKey(date string, partySize int) string {
	return fmt.Sprintf("availability:%s:%d", date, partySize)
}

// GetAvailability returns the day's candidate slots with per-slot free-table
// counts for the party size. Closed days and whole-restaurant blocks produce
// IsOpen=false with a reason; an open day with no fitting table produces
// IsOpen=true with empty slots and a distinct reason.
func (s *AvailabilityService) GetAvailability(ctx context.Context, date time.Time, partySize int) (*AvailabilityResult, error) {
	dateStr := date.Format("2006-01-02")
	dayName := domain.DayName(date)

	if cached := s.cacheGet(ctx, dateStr, partySize); cached != nil {
		return cached, nil
	}

	restaurant, err := s.restaurantRepo.GetRestaurant(ctx)
	if err != nil {
		return nil, err
	}
	cfg := restaurant.BookingConfig

	dayHours := restaurant.OpeningHours[dayName]
	if dayHours == nil {
		metrics.IncAvailability("closed")
		return s.cacheSet(ctx, &AvailabilityResult{
			Date:         dateStr,
			PartySize:    partySize,
			DayName:      dayName,
			IsOpen:       false,
			ClosedReason: "The restaurant is closed on this day",
			Slots:        []TimeSlot{},
		}), nil
	}

	globalBlock, err := s.blockedRepo.GetGlobalBlock(ctx, restaurant.ID, dateStr)
	if err != nil {
		return nil, err
	}
	if globalBlock != nil {
		reason := globalBlock.Reason
		if reason == "" {
			reason = "Exceptionally closed"
		}
		metrics.IncAvailability("closed")
		return s.cacheSet(ctx, &AvailabilityResult{
			Date:         dateStr,
			PartySize:    partySize,
			DayName:      dayName,
			IsOpen:       false,
			ClosedReason: reason,
			Slots:        []TimeSlot{},
		}), nil
	}

	tables, err := s.tableRepo.GetSuitableTables(ctx, restaurant.ID, partySize)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		metrics.IncAvailability("no_capacity")
		return s.cacheSet(ctx, &AvailabilityResult{
			Date:         dateStr,
			PartySize:    partySize,
			DayName:      dayName,
			IsOpen:       true,
			OpeningHours: dayHours,
			ClosedReason: fmt.Sprintf("No table can seat a party of %d", partySize),
			Slots:        []TimeSlot{},
		}), nil
	}

	tableIDs := make([]uuid.UUID, len(tables))
	for i, t := range tables {
		tableIDs[i] = t.ID
	}

	reservations, err := s.reservationRepo.GetByDateAndTables(ctx, restaurant.ID, dateStr, tableIDs)
	if err != nil {
		return nil, err
	}

	blocks, err := s.blockedRepo.GetForDate(ctx, restaurant.ID, dateStr, tableIDs)
	if err != nil {
		return nil, err
	}

	allSlots := domain.GenerateDaySlots(dayHours, cfg.SlotDuration)
	slots := make([]TimeSlot, 0, len(allSlots))

	for _, slotTime := range allSlots {
		slotStart, err := domain.TimeToMinutes(slotTime)
		if err != nil {
			continue
		}

		tablesAvailable := 0
		for _, table := range tables {
			if tableAvailableForSlot(slotStart, cfg, forTable(reservations, table.ID), blocksForTable(blocks, table.ID)) {
				tablesAvailable++
			}
		}

		slots = append(slots, TimeSlot{
			Time:            slotTime,
			Available:       tablesAvailable > 0,
			TablesAvailable: tablesAvailable,
		})
	}

	metrics.IncAvailability("open")
	return s.cacheSet(ctx, &AvailabilityResult{
		Date:         dateStr,
		PartySize:    partySize,
		DayName:      dayName,
		IsOpen:       true,
		OpeningHours: dayHours,
		Slots:        slots,
	}), nil
}

// FindAvailableTable selects one table for the slot, preferring the smallest
// table that fits the party. It returns uuid.Nil when no table passes; callers
// must treat that as "no capacity", not as an error.
func (s *AvailabilityService) FindAvailableTable(ctx context.Context, date, timeOfDay string, partySize int) (uuid.UUID, error) {
	restaurant, err := s.restaurantRepo.GetRestaurant(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	cfg := restaurant.BookingConfig

	slotStart, err := domain.TimeToMinutes(timeOfDay)
	if err != nil {
		return uuid.Nil, err
	}

	tables, err := s.tableRepo.GetSuitableTables(ctx, restaurant.ID, partySize)
	if err != nil {
		return uuid.Nil, err
	}

	for _, table := range tables {
		reservations, err := s.reservationRepo.GetByTable(ctx, table.ID, date)
		if err != nil {
			return uuid.Nil, err
		}

		blocks, err := s.blockedRepo.GetForTable(ctx, table.ID, date)
		if err != nil {
			return uuid.Nil, err
		}

		if tableAvailableForSlot(slotStart, cfg, reservations, blocks) {
			return table.ID, nil
		}
	}

	return uuid.Nil, nil
}

// BookingConfig exposes the restaurant's booking parameters to boundary
// validation (max party size, advance-booking bounds).
func (s *AvailabilityService) BookingConfig(ctx context.Context) (domain.BookingConfig, error) {
	restaurant, err := s.restaurantRepo.GetRestaurant(ctx)
	if err != nil {
		return domain.BookingConfig{}, err
	}
	return restaurant.BookingConfig, nil
}

// CalculateEndTime returns the start time plus the configured meal duration.
func (s *AvailabilityService) CalculateEndTime(ctx context.Context, startTime string) (string, error) {
	restaurant, err := s.restaurantRepo.GetRestaurant(ctx)
	if err != nil {
		return "", err
	}

	mealDuration := restaurant.BookingConfig.MealDuration
	if mealDuration <= 0 {
		mealDuration = 90
	}

	startMinutes, err := domain.TimeToMinutes(startTime)
	if err != nil {
		return "", err
	}

	return domain.MinutesToTime(startMinutes + mealDuration), nil
}

// tableAvailableForSlot applies the per-table interval test: the table is free
// at the slot iff neither a block nor a reservation overlaps the meal window
// [slotStart, slotStart+mealDuration). Buffer time extends only the end of
// reservations; blocks are not buffered.
func tableAvailableForSlot(slotStart int, cfg domain.BookingConfig, reservations []domain.Reservation, blocks []domain.BlockedSlot) bool {
	slotEnd := slotStart + cfg.MealDuration

	for _, block := range blocks {
		blockStart, blockEnd, err := block.Interval()
		if err != nil {
			continue
		}
		if domain.PeriodsOverlap(slotStart, slotEnd, blockStart, blockEnd) {
			return false
		}
	}

	for _, res := range reservations {
		if !res.Occupies() {
			continue
		}
		resStart, err := domain.TimeToMinutes(res.TimeStart)
		if err != nil {
			continue
		}
		resEnd, err := domain.TimeToMinutes(res.TimeEnd)
		if err != nil {
			continue
		}
		if domain.PeriodsOverlap(slotStart, slotEnd, resStart, resEnd+cfg.BufferTime) {
			return false
		}
	}

	return true
}

func forTable(reservations []domain.Reservation, tableID uuid.UUID) []domain.Reservation {
	var result []domain.Reservation
	for _, r := range reservations {
		if r.TableID != nil && *r.TableID == tableID {
			result = append(result, r)
		}
	}
	return result
}

func blocksForTable(blocks []domain.BlockedSlot, tableID uuid.UUID) []domain.BlockedSlot {
	var result []domain.BlockedSlot
	for _, b := range blocks {
		if b.TableID == nil || *b.TableID == tableID {
			result = append(result, b)
		}
	}
	return result
}

// cacheGet returns a cached availability result, or nil. Cache failures are
// treated as misses; availability must work without Redis.
func (s *AvailabilityService) cacheGet(ctx context.Context, date string, partySize int) *AvailabilityResult {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, AvailabilityCacheKey(date, partySize)).Bytes()
	if err != nil {
		return nil
	}

	var result AvailabilityResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

func (s *AvailabilityService) cacheSet(ctx context.Context, result *AvailabilityResult) *AvailabilityResult {
	if s.cache == nil {
		return result
	}

	data, err := json.Marshal(result)
	if err != nil {
		return result
	}

	if err := s.cache.Set(ctx, AvailabilityCacheKey(result.Date, result.PartySize), data, availabilityCacheTTL).Err(); err != nil {
		s.logger.Debug().Err(err).Msg("availability cache write failed")
	}
	return result
}
