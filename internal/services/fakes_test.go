package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/eventbus"
	"maintenance-system/pkg/types"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeTeamRepo struct {
	teams  map[uint64]entities.Team
	nextID uint64
}

func newFakeTeamRepo(teams ...entities.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: map[uint64]entities.Team{}, nextID: 100}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	return r
}

func (r *fakeTeamRepo) GetTeams(_ context.Context, _ types.Filter, onlyActive bool) ([]entities.Team, error) {
	var out []entities.Team
	for _, t := range r.teams {
		if onlyActive && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTeamRepo) FindTeam(_ context.Context, id uint64) (*entities.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, apperrors.NotFoundf("команда %d", id)
	}
	return &t, nil
}

func (r *fakeTeamRepo) CreateTeam(_ context.Context, team *entities.Team) error {
	r.nextID++
	team.ID = r.nextID
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) UpdateTeam(_ context.Context, team *entities.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return apperrors.NotFoundf("команда %d", team.ID)
	}
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) DeleteTeam(_ context.Context, id uint64) error {
	if _, ok := r.teams[id]; !ok {
		return apperrors.NotFoundf("команда %d", id)
	}
	delete(r.teams, id)
	return nil
}

type fakeTechnicianRepo struct {
	technicians map[uint64]entities.Technician
	nextID      uint64
}

func newFakeTechnicianRepo(list ...entities.Technician) *fakeTechnicianRepo {
	r := &fakeTechnicianRepo{technicians: map[uint64]entities.Technician{}, nextID: 200}
	for _, t := range list {
		r.technicians[t.ID] = t
	}
	return r
}

func (r *fakeTechnicianRepo) GetTechnicians(_ context.Context, filter repositories.TechnicianFilter) ([]entities.Technician, error) {
	var out []entities.Technician
	for _, t := range r.technicians {
		if filter.TeamID != 0 && t.TeamID != filter.TeamID {
			continue
		}
		if filter.OnlyActive && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTechnicianRepo) FindTechnician(_ context.Context, id uint64) (*entities.Technician, error) {
	t, ok := r.technicians[id]
	if !ok {
		return nil, apperrors.NotFoundf("техник %d", id)
	}
	return &t, nil
}

func (r *fakeTechnicianRepo) CreateTechnician(_ context.Context, tc *entities.Technician) error {
	r.nextID++
	tc.ID = r.nextID
	r.technicians[tc.ID] = *tc
	return nil
}

func (r *fakeTechnicianRepo) UpdateTechnician(_ context.Context, tc *entities.Technician) error {
	if _, ok := r.technicians[tc.ID]; !ok {
		return apperrors.NotFoundf("техник %d", tc.ID)
	}
	r.technicians[tc.ID] = *tc
	return nil
}

func (r *fakeTechnicianRepo) DeleteTechnician(_ context.Context, id uint64) error {
	delete(r.technicians, id)
	return nil
}

type fakeEquipmentRepo struct {
	equipment map[uint64]entities.Equipment
	nextID    uint64
}

func newFakeEquipmentRepo(list ...entities.Equipment) *fakeEquipmentRepo {
	r := &fakeEquipmentRepo{equipment: map[uint64]entities.Equipment{}, nextID: 300}
	for _, e := range list {
		r.equipment[e.ID] = e
	}
	return r
}

func (r *fakeEquipmentRepo) GetEquipments(_ context.Context, _ entities.EquipmentFilter) ([]entities.Equipment, uint64, error) {
	var out []entities.Equipment
	for _, e := range r.equipment {
		out = append(out, e)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeEquipmentRepo) FindEquipment(_ context.Context, id uint64) (*entities.Equipment, error) {
	e, ok := r.equipment[id]
	if !ok {
		return nil, apperrors.NotFoundf("оборудование %d", id)
	}
	return &e, nil
}

func (r *fakeEquipmentRepo) CreateEquipment(_ context.Context, e *entities.Equipment) error {
	r.nextID++
	e.ID = r.nextID
	r.equipment[e.ID] = *e
	return nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(_ context.Context, e *entities.Equipment) error {
	r.equipment[e.ID] = *e
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(_ context.Context, id uint64) error {
	if _, ok := r.equipment[id]; !ok {
		return apperrors.NotFoundf("оборудование %d", id)
	}
	delete(r.equipment, id)
	return nil
}

type fakeRequestRepo struct {
	requests   map[uint64]entities.Request
	nextID     uint64
	lastFilter entities.RequestFilter
	lockedIDs  []uint64
}

func newFakeRequestRepo(list ...entities.Request) *fakeRequestRepo {
	r := &fakeRequestRepo{requests: map[uint64]entities.Request{}, nextID: 400}
	for _, req := range list {
		r.requests[req.ID] = req
	}
	return r
}

func (r *fakeRequestRepo) GetRequests(_ context.Context, filter entities.RequestFilter) ([]entities.Request, uint64, error) {
	r.lastFilter = filter
	var out []entities.Request
	for _, req := range r.requests {
		if filter.EquipmentID != 0 && req.EquipmentID != filter.EquipmentID {
			continue
		}
		if filter.Type != "" && req.Type != filter.Type {
			continue
		}
		if filter.Stage != "" && req.Stage != filter.Stage {
			continue
		}
		out = append(out, req)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeRequestRepo) FindRequest(_ context.Context, id uint64) (*entities.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, apperrors.NotFoundf("заявка %d", id)
	}
	return &req, nil
}

func (r *fakeRequestRepo) FindRequestForUpdate(ctx context.Context, _ pgx.Tx, id uint64) (*entities.Request, error) {
	r.lockedIDs = append(r.lockedIDs, id)
	return r.FindRequest(ctx, id)
}

func (r *fakeRequestRepo) CreateRequest(_ context.Context, req *entities.Request) error {
	r.nextID++
	req.ID = r.nextID
	req.CreatedAt = fixedNow
	req.UpdatedAt = fixedNow
	r.requests[req.ID] = *req
	return nil
}

func (r *fakeRequestRepo) UpdateRequest(_ context.Context, _ pgx.Tx, req *entities.Request) error {
	r.requests[req.ID] = *req
	return nil
}

func (r *fakeRequestRepo) DeleteRequest(_ context.Context, id uint64) error {
	if _, ok := r.requests[id]; !ok {
		return apperrors.NotFoundf("заявка %d", id)
	}
	delete(r.requests, id)
	return nil
}

func (r *fakeRequestRepo) CountOpenByEquipment(_ context.Context, equipmentID uint64) (uint64, error) {
	var n uint64
	for _, req := range r.requests {
		if req.EquipmentID == equipmentID && !req.Stage.IsClosed() {
			n++
		}
	}
	return n, nil
}

// fakeTxManager выполняет fn без настоящей транзакции.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type fakeUserRepo struct {
	users  map[uint64]entities.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint64]entities.User{}}
}

func (r *fakeUserRepo) FindUserByID(_ context.Context, id uint64) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFoundf("пользователь %d", id)
	}
	return &u, nil
}

func (r *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.NotFoundf("пользователь %s", email)
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entities.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.NewValidationError("пользователь с таким email уже существует")
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

// fakeCache: Redis в памяти. TTL не истекает, Expire только запоминается.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	}
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		delete(c.ttls, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(_ context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		c.ttls[key] = expiration
	}
	return nil
}

func (c *fakeCache) ttl(key string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.ttls[key]
	return d, ok
}

type fakePublisher struct {
	events []eventbus.Event
}

func (p *fakePublisher) Publish(_ context.Context, event eventbus.Event) {
	p.events = append(p.events, event)
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) InvalidateReports(context.Context) {
	c.calls++
}

type fakeReportRepo struct {
	dashboardCalls int
	stats          entities.DashboardStats
}

func (r *fakeReportRepo) Dashboard(context.Context) (entities.DashboardStats, error) {
	r.dashboardCalls++
	return r.stats, nil
}

func (r *fakeReportRepo) CountByTeam(context.Context) ([]entities.TeamCount, error) {
	return []entities.TeamCount{{TeamID: 1, TeamName: "Mechanics", Count: 3}}, nil
}

func (r *fakeReportRepo) CountByCategory(context.Context) ([]entities.CategoryCount, error) {
	return []entities.CategoryCount{{Category: entities.CategoryMachinery, Count: 2}}, nil
}

func (r *fakeReportRepo) CountByStage(context.Context) ([]entities.StageCount, error) {
	out := make([]entities.StageCount, 0, len(entities.Stages))
	for _, s := range entities.Stages {
		out = append(out, entities.StageCount{Stage: s})
	}
	return out, nil
}

func (r *fakeReportRepo) CompletionTime(context.Context) (entities.CompletionStats, error) {
	return entities.CompletionStats{AverageDuration: 2.3333333, TotalCompleted: 3}, nil
}
