package dto

// CreateJobRequest — тело POST /api/jobs.
// Если указаны этапы, заказ создаётся с планом этапов.
type CreateJobRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description" binding:"required"`
	Budget      uint64             `json:"budget"`
	Deadline    uint64             `json:"deadline"`
	Milestones  []MilestoneRequest `json:"milestones"`
}

// MilestoneRequest описывает один этап при создании заказа.
type MilestoneRequest struct {
	Description string `json:"description" binding:"required"`
	Amount      uint64 `json:"amount"`
	Deadline    uint64 `json:"deadline"`
}

// SubmitBidRequest — тело POST /api/jobs/:id/bids.
type SubmitBidRequest struct {
	Amount   uint64 `json:"amount"`
	Proposal string `json:"proposal" binding:"required"`
}

// AcceptBidRequest — тело POST /api/jobs/:id/accept-bid.
type AcceptBidRequest struct {
	FreelancerID string `json:"freelancer_id" binding:"required"`
}

// OpenDisputeRequest — тело POST /api/jobs/:id/dispute.
type OpenDisputeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AssignArbitratorRequest — тело POST /api/disputes/:id/assign.
type AssignArbitratorRequest struct {
	ArbitratorID string `json:"arbitrator_id" binding:"required"`
}

// ResolveDisputeRequest — тело POST /api/disputes/:id/resolve.
type ResolveDisputeRequest struct {
	Amount uint64 `json:"amount"`
}

// RateJobRequest — тело POST /api/jobs/:id/rate.
type RateJobRequest struct {
	Rating uint64 `json:"rating" binding:"required"`
}

// UpdateProfileRequest — тело PUT /api/profile.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
}

// UpdateSkillsRequest — тело PUT /api/profile/skills.
type UpdateSkillsRequest struct {
	Skills []string `json:"skills" binding:"required"`
}

// DepositRequest — тело POST /api/bank/deposit.
type DepositRequest struct {
	Amount uint64 `json:"amount" binding:"required"`
}
