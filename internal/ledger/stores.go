package ledger

import (
	"sort"

	"github.com/google/uuid"

	"github.com/jobledger/jobledger-backend/internal/models"
)

// Каждая коллекция сущностей — явное хранилище, принадлежащее ровно одному
// компоненту леджера. Снаружи пакета данные доступны только через публичные
// операции Ledger; прямого доступа к таблицам нет.

type bidKey struct {
	jobID        uint64
	freelancerID uuid.UUID
}

type ratedKey struct {
	jobID   uint64
	raterID uuid.UUID
}

type jobStore struct {
	seq   uint64
	items map[uint64]*models.Job
}

func newJobStore() *jobStore {
	return &jobStore{items: make(map[uint64]*models.Job)}
}

func (s *jobStore) nextID() uint64 {
	s.seq++
	return s.seq
}

func (s *jobStore) get(id uint64) (*models.Job, bool) {
	j, ok := s.items[id]
	return j, ok
}

func (s *jobStore) put(j *models.Job) {
	s.items[j.ID] = j
}

func (s *jobStore) list() []*models.Job {
	out := make([]*models.Job, 0, len(s.items))
	for _, j := range s.items {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

type bidStore struct {
	items map[bidKey]*models.Bid
}

func newBidStore() *bidStore {
	return &bidStore{items: make(map[bidKey]*models.Bid)}
}

func (s *bidStore) get(jobID uint64, freelancerID uuid.UUID) (*models.Bid, bool) {
	b, ok := s.items[bidKey{jobID, freelancerID}]
	return b, ok
}

// put перезаписывает предыдущий отклик той же пары (job, freelancer).
func (s *bidStore) put(b *models.Bid) {
	s.items[bidKey{b.JobID, b.FreelancerID}] = b
}

// escrowStore хранит суммы, находящиеся в custody по каждому заказу.
// Запись существует тогда и только тогда, когда заказ в статусе in_progress.
type escrowStore struct {
	held map[uint64]uint64
}

func newEscrowStore() *escrowStore {
	return &escrowStore{held: make(map[uint64]uint64)}
}

func (s *escrowStore) balance(jobID uint64) (uint64, bool) {
	amount, ok := s.held[jobID]
	return amount, ok
}

func (s *escrowStore) hold(jobID, amount uint64) {
	s.held[jobID] = amount
}

func (s *escrowStore) debit(jobID, amount uint64) {
	s.held[jobID] -= amount
}

func (s *escrowStore) release(jobID uint64) {
	delete(s.held, jobID)
}

type milestoneStore struct {
	plans map[uint64][]*models.Milestone
}

func newMilestoneStore() *milestoneStore {
	return &milestoneStore{plans: make(map[uint64][]*models.Milestone)}
}

// createPlan записывает план целиком, с плотными id от нуля.
// Вызывается только из PostJobWithMilestones, поэтому частичный или
// повторный план по существующему заказу невозможен.
func (s *milestoneStore) createPlan(jobID uint64, inputs []models.MilestoneInput) {
	plan := make([]*models.Milestone, 0, len(inputs))
	for i, in := range inputs {
		plan = append(plan, &models.Milestone{
			JobID:       jobID,
			MilestoneID: i,
			Description: in.Description,
			Amount:      in.Amount,
			Status:      models.MilestoneStatusPending,
			Deadline:    in.Deadline,
		})
	}
	s.plans[jobID] = plan
}

func (s *milestoneStore) plan(jobID uint64) []*models.Milestone {
	return s.plans[jobID]
}

func (s *milestoneStore) get(jobID uint64, milestoneID int) (*models.Milestone, bool) {
	plan := s.plans[jobID]
	if milestoneID < 0 || milestoneID >= len(plan) {
		return nil, false
	}
	return plan[milestoneID], true
}

type disputeStore struct {
	seq   uint64
	items map[uint64]*models.Dispute
}

func newDisputeStore() *disputeStore {
	return &disputeStore{items: make(map[uint64]*models.Dispute)}
}

func (s *disputeStore) nextID() uint64 {
	s.seq++
	return s.seq
}

func (s *disputeStore) get(id uint64) (*models.Dispute, bool) {
	d, ok := s.items[id]
	return d, ok
}

func (s *disputeStore) put(d *models.Dispute) {
	s.items[d.ID] = d
}

type ratingStore struct {
	items map[uuid.UUID]*models.UserRating
	rated map[ratedKey]struct{}
}

func newRatingStore() *ratingStore {
	return &ratingStore{
		items: make(map[uuid.UUID]*models.UserRating),
		rated: make(map[ratedKey]struct{}),
	}
}

func (s *ratingStore) ensure(userID uuid.UUID) *models.UserRating {
	r, ok := s.items[userID]
	if !ok {
		r = &models.UserRating{UserID: userID}
		s.items[userID] = r
	}
	return r
}

func (s *ratingStore) get(userID uuid.UUID) (*models.UserRating, bool) {
	r, ok := s.items[userID]
	return r, ok
}

func (s *ratingStore) isRated(jobID uint64, raterID uuid.UUID) bool {
	_, ok := s.rated[ratedKey{jobID, raterID}]
	return ok
}

func (s *ratingStore) markRated(jobID uint64, raterID uuid.UUID) {
	s.rated[ratedKey{jobID, raterID}] = struct{}{}
}

type profileStore struct {
	items map[uuid.UUID]*models.Profile
}

func newProfileStore() *profileStore {
	return &profileStore{items: make(map[uuid.UUID]*models.Profile)}
}

func (s *profileStore) ensure(userID uuid.UUID) *models.Profile {
	p, ok := s.items[userID]
	if !ok {
		p = &models.Profile{UserID: userID}
		s.items[userID] = p
	}
	return p
}

func (s *profileStore) get(userID uuid.UUID) (*models.Profile, bool) {
	p, ok := s.items[userID]
	return p, ok
}
