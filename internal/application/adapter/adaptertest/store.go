// Package adaptertest provides in-memory implementations of the adapter ports
// for use case tests.
package adaptertest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/domain/entity"
	domainerror "github.com/trip-logbook/backend/internal/domain/error"
	"github.com/trip-logbook/backend/internal/domain/policy"
)

type statKey struct {
	carID uuid.UUID
	year  int
	month int
}

// Store keeps every ledger record in memory.
type Store struct {
	mu       sync.Mutex
	err      error
	users    map[uuid.UUID]*entity.User
	cars     map[uuid.UUID]*entity.Car
	trips    map[uuid.UUID]*entity.Trip
	refuels  map[uuid.UUID]*entity.Refuel
	expenses map[uuid.UUID]*entity.Expense
	tags     map[uuid.UUID]*entity.Tag
	stats    map[statKey]*entity.MonthlyCarStat
	upserts  int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		users:    map[uuid.UUID]*entity.User{},
		cars:     map[uuid.UUID]*entity.Car{},
		trips:    map[uuid.UUID]*entity.Trip{},
		refuels:  map[uuid.UUID]*entity.Refuel{},
		expenses: map[uuid.UUID]*entity.Expense{},
		tags:     map[uuid.UUID]*entity.Tag{},
		stats:    map[statKey]*entity.MonthlyCarStat{},
	}
}

// FailWith makes every repository call return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Upserts returns how many monthly stat upserts were executed.
func (s *Store) Upserts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upserts
}

func (s *Store) lock() (func(), error) {
	s.mu.Lock()
	if s.err != nil {
		err := s.err
		s.mu.Unlock()
		return func() {}, err
	}
	return s.mu.Unlock, nil
}

// Users returns the user repository.
func (s *Store) Users() adapter.UserRepository { return &userRepository{s} }

// Cars returns the car repository.
func (s *Store) Cars() adapter.CarRepository { return &carRepository{s} }

// Trips returns the trip repository.
func (s *Store) Trips() adapter.TripRepository { return &tripRepository{s} }

// Refuels returns the refuel repository.
func (s *Store) Refuels() adapter.RefuelRepository { return &refuelRepository{s} }

// Expenses returns the expense repository.
func (s *Store) Expenses() adapter.ExpenseRepository { return &expenseRepository{s} }

// Tags returns the tag repository.
func (s *Store) Tags() adapter.TagRepository { return &tagRepository{s} }

// MonthlyStats returns the monthly stat repository.
func (s *Store) MonthlyStats() adapter.MonthlyStatRepository { return &monthlyStatRepository{s} }

type userRepository struct{ s *Store }

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	u := *user
	r.s.users[user.ID] = &u
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if u, ok := r.s.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	existing, ok := r.s.users[user.ID]
	if !ok {
		return domainerror.ErrUserNotFound
	}
	u := *user
	u.Roles = existing.Roles
	r.s.users[user.ID] = &u
	return nil
}

func (r *userRepository) SetRoles(ctx context.Context, userID uuid.UUID, roles []entity.Role) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	u, ok := r.s.users[userID]
	if !ok {
		return domainerror.ErrUserNotFound
	}
	u.Roles = append([]entity.Role(nil), roles...)
	return nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	if err == domainerror.ErrUserNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return false, err
	}
	for _, u := range r.s.users {
		if u.ID != excludeID && u.Email != "" && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) ListWithEmail(ctx context.Context) ([]*entity.User, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	var users []*entity.User
	for _, u := range r.s.users {
		if u.Email != "" {
			c := *u
			users = append(users, &c)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

type carRepository struct{ s *Store }

func (r *carRepository) Create(ctx context.Context, car *entity.Car) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	c := *car
	r.s.cars[car.ID] = &c
	return nil
}

func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if c, ok := r.s.cars[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domainerror.ErrCarNotFound
}

func (r *carRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Car, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	var cars []*entity.Car
	for _, id := range ids {
		if c, ok := r.s.cars[id]; ok {
			cp := *c
			cars = append(cars, &cp)
		}
	}
	return cars, nil
}

func (r *carRepository) List(ctx context.Context, scope policy.Scope) ([]*entity.Car, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	cars := []*entity.Car{}
	for _, c := range r.s.cars {
		if scope.Includes(c.OwnerID) {
			cp := *c
			cars = append(cars, &cp)
		}
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i].Label() < cars[j].Label() })
	return cars, nil
}

func (r *carRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(r.s.cars))
	for id := range r.s.cars {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (r *carRepository) Update(ctx context.Context, car *entity.Car) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := r.s.cars[car.ID]; !ok {
		return domainerror.ErrCarNotFound
	}
	c := *car
	r.s.cars[car.ID] = &c
	return nil
}

func (r *carRepository) Delete(ctx context.Context, id uuid.UUID) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	delete(r.s.cars, id)
	for tid, t := range r.s.trips {
		if t.CarID == id {
			r.s.unlinkExpenses(tid)
			delete(r.s.trips, tid)
		}
	}
	for rid, rf := range r.s.refuels {
		if rf.CarID == id {
			delete(r.s.refuels, rid)
		}
	}
	for k := range r.s.stats {
		if k.carID == id {
			delete(r.s.stats, k)
		}
	}
	return nil
}

func (r *carRepository) ExistsDuplicate(ctx context.Context, ownerID uuid.UUID, brand, model string, year int, excludeID uuid.UUID) (bool, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return false, err
	}
	for _, c := range r.s.cars {
		if c.ID != excludeID && c.OwnerID == ownerID && strings.EqualFold(c.Brand, brand) && strings.EqualFold(c.Model, model) && c.Year == year {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) unlinkExpenses(tripID uuid.UUID) {
	for _, e := range s.expenses {
		if e.TripID != nil && *e.TripID == tripID {
			e.TripID = nil
		}
	}
}

func inWindow(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}

func carMatches(s *Store, carID uuid.UUID, scope policy.Scope, one *uuid.UUID, many []uuid.UUID) bool {
	if one != nil && *one != carID {
		return false
	}
	if len(many) > 0 {
		found := false
		for _, id := range many {
			if id == carID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	car, ok := s.cars[carID]
	return ok && scope.Includes(car.OwnerID)
}

type tripRepository struct{ s *Store }

func (r *tripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	t := *trip
	r.s.trips[trip.ID] = &t
	return nil
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if t, ok := r.s.trips[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, domainerror.ErrTripNotFound
}

func (r *tripRepository) List(ctx context.Context, filter adapter.TripFilter) ([]*entity.Trip, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	trips := []*entity.Trip{}
	for _, t := range r.s.trips {
		if carMatches(r.s, t.CarID, filter.Scope, filter.CarID, filter.CarIDs) && inWindow(t.StartDate, filter.From, filter.To) {
			cp := *t
			trips = append(trips, &cp)
		}
	}
	sort.Slice(trips, func(i, j int) bool {
		if !trips[i].StartDate.Equal(trips[j].StartDate) {
			return trips[i].StartDate.After(trips[j].StartDate)
		}
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
	return trips, nil
}

func (r *tripRepository) Update(ctx context.Context, trip *entity.Trip) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := r.s.trips[trip.ID]; !ok {
		return domainerror.ErrTripNotFound
	}
	t := *trip
	r.s.trips[trip.ID] = &t
	return nil
}

func (r *tripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	r.s.unlinkExpenses(id)
	delete(r.s.trips, id)
	return nil
}

type refuelRepository struct{ s *Store }

func (r *refuelRepository) Create(ctx context.Context, refuel *entity.Refuel) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	rf := *refuel
	r.s.refuels[refuel.ID] = &rf
	return nil
}

func (r *refuelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Refuel, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if rf, ok := r.s.refuels[id]; ok {
		cp := *rf
		return &cp, nil
	}
	return nil, domainerror.ErrRefuelNotFound
}

func (r *refuelRepository) List(ctx context.Context, filter adapter.RefuelFilter) ([]*entity.Refuel, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	refuels := []*entity.Refuel{}
	for _, rf := range r.s.refuels {
		if carMatches(r.s, rf.CarID, filter.Scope, filter.CarID, filter.CarIDs) && inWindow(rf.Date, filter.From, filter.To) {
			cp := *rf
			refuels = append(refuels, &cp)
		}
	}
	sort.Slice(refuels, func(i, j int) bool {
		if !refuels[i].Date.Equal(refuels[j].Date) {
			return refuels[i].Date.After(refuels[j].Date)
		}
		return refuels[i].CreatedAt.After(refuels[j].CreatedAt)
	})
	return refuels, nil
}

func (r *refuelRepository) FindNeighbors(ctx context.Context, carID uuid.UUID, date time.Time, excludeID uuid.UUID) (*adapter.RefuelNeighbors, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	neighbors := &adapter.RefuelNeighbors{}
	for _, rf := range r.s.refuels {
		if rf.CarID != carID || rf.ID == excludeID {
			continue
		}
		cp := *rf
		if !rf.Date.After(date) {
			prev := neighbors.Previous
			if prev == nil || rf.Date.After(prev.Date) || (rf.Date.Equal(prev.Date) && rf.Odometer > prev.Odometer) {
				neighbors.Previous = &cp
			}
			continue
		}
		next := neighbors.Next
		if next == nil || rf.Date.Before(next.Date) || (rf.Date.Equal(next.Date) && rf.Odometer < next.Odometer) {
			neighbors.Next = &cp
		}
	}
	return neighbors, nil
}

func (r *refuelRepository) Update(ctx context.Context, refuel *entity.Refuel) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := r.s.refuels[refuel.ID]; !ok {
		return domainerror.ErrRefuelNotFound
	}
	rf := *refuel
	r.s.refuels[refuel.ID] = &rf
	return nil
}

func (r *refuelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	delete(r.s.refuels, id)
	return nil
}

type expenseRepository struct{ s *Store }

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	e := *expense
	r.s.expenses[expense.ID] = &e
	return nil
}

func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if e, ok := r.s.expenses[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domainerror.ErrExpenseNotFound
}

func (r *expenseRepository) List(ctx context.Context, filter adapter.ExpenseFilter) ([]*entity.Expense, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	expenses := []*entity.Expense{}
	for _, e := range r.s.expenses {
		if !filter.Scope.Includes(e.CreatedBy) {
			continue
		}
		if filter.TripID != nil && (e.TripID == nil || *e.TripID != *filter.TripID) {
			continue
		}
		cp := *e
		expenses = append(expenses, &cp)
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].CreatedAt.After(expenses[j].CreatedAt) })
	return expenses, nil
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := r.s.expenses[expense.ID]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	e := *expense
	r.s.expenses[expense.ID] = &e
	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	delete(r.s.expenses, id)
	return nil
}

type tagRepository struct{ s *Store }

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	t := *tag
	r.s.tags[tag.ID] = &t
	return nil
}

func (r *tagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if t, ok := r.s.tags[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, domainerror.ErrTagNotFound
}

func (r *tagRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tag, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	tags := []entity.Tag{}
	for _, id := range ids {
		if t, ok := r.s.tags[id]; ok {
			tags = append(tags, *t)
		}
	}
	return tags, nil
}

func (r *tagRepository) List(ctx context.Context) ([]*entity.Tag, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	tags := []*entity.Tag{}
	for _, t := range r.s.tags {
		cp := *t
		tags = append(tags, &cp)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (r *tagRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return false, err
	}
	for _, t := range r.s.tags {
		if t.ID != excludeID && strings.EqualFold(t.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *tagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := r.s.tags[tag.ID]; !ok {
		return domainerror.ErrTagNotFound
	}
	t := *tag
	r.s.tags[tag.ID] = &t
	return nil
}

func (r *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	delete(r.s.tags, id)
	return nil
}

type monthlyStatRepository struct{ s *Store }

func (r *monthlyStatRepository) Upsert(ctx context.Context, stat *entity.MonthlyCarStat) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	key := statKey{stat.CarID, stat.Year, stat.Month}
	st := *stat
	if existing, ok := r.s.stats[key]; ok {
		st.ID = existing.ID
	}
	r.s.stats[key] = &st
	r.s.upserts++
	return nil
}

func (r *monthlyStatRepository) FindByKey(ctx context.Context, carID uuid.UUID, year, month int) (*entity.MonthlyCarStat, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	if st, ok := r.s.stats[statKey{carID, year, month}]; ok {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (r *monthlyStatRepository) ListByCar(ctx context.Context, carID uuid.UUID, year *int) ([]*entity.MonthlyCarStat, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	stats := []*entity.MonthlyCarStat{}
	for k, st := range r.s.stats {
		if k.carID == carID && (year == nil || k.year == *year) {
			cp := *st
			stats = append(stats, &cp)
		}
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Year != stats[j].Year {
			return stats[i].Year > stats[j].Year
		}
		return stats[i].Month > stats[j].Month
	})
	return stats, nil
}
