package handler

import (
	"time"

	"lankaconnect/internal/events/models"
)

// EventResponse is the API shape of an Event aggregate.
type EventResponse struct {
	ID             string                  `json:"id"`
	OrganizerID    string                  `json:"organizer_id"`
	Title          string                  `json:"title"`
	Description    string                  `json:"description,omitempty"`
	Status         string                  `json:"status"`
	StatusReason   string                  `json:"status_reason,omitempty"`
	Capacity       int                     `json:"capacity"`
	ConfirmedCount int                     `json:"confirmed_count"`
	StartAt        time.Time               `json:"start_at"`
	EndAt          time.Time               `json:"end_at"`
	TicketPrice    *PriceInput             `json:"ticket_price,omitempty"`
	Registrations  []RegistrationResponse  `json:"registrations"`
	WaitingList    []WaitlistEntryResponse `json:"waiting_list"`
	Passes         []PassResponse          `json:"passes"`
	SignUpLists    []SignUpListResponse    `json:"sign_up_lists"`
	Badges         []BadgeResponse         `json:"badges"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

type RegistrationResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

type WaitlistEntryResponse struct {
	UserID   string    `json:"user_id"`
	Position int       `json:"position"`
	JoinedAt time.Time `json:"joined_at"`
}

type PassResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Price     PriceInput `json:"price"`
	Total     int        `json:"total"`
	Available int        `json:"available"`
	Reserved  int        `json:"reserved"`
}

type SignUpListResponse struct {
	ID          string               `json:"id"`
	Category    string               `json:"category"`
	Description string               `json:"description,omitempty"`
	Items       []string             `json:"items"`
	Commitments []CommitmentResponse `json:"commitments"`
}

type CommitmentResponse struct {
	UserID   string `json:"user_id"`
	Item     string `json:"item,omitempty"`
	Quantity int    `json:"quantity"`
}

type BadgeResponse struct {
	BadgeID    string     `json:"badge_id"`
	AssignedAt time.Time  `json:"assigned_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// FromEvent converts the aggregate to its API shape.
func FromEvent(e *models.Event) EventResponse {
	resp := EventResponse{
		ID:             e.ID.String(),
		OrganizerID:    e.OrganizerID.String(),
		Title:          e.Title,
		Description:    e.Description,
		Status:         e.Status.String(),
		StatusReason:   e.StatusReason,
		Capacity:       e.Capacity,
		ConfirmedCount: e.ConfirmedCount(),
		StartAt:        e.StartAt,
		EndAt:          e.EndAt,
		Registrations:  make([]RegistrationResponse, 0, len(e.Registrations)),
		WaitingList:    make([]WaitlistEntryResponse, 0, len(e.WaitingList)),
		Passes:         make([]PassResponse, 0, len(e.Passes)),
		SignUpLists:    make([]SignUpListResponse, 0, len(e.SignUpLists)),
		Badges:         make([]BadgeResponse, 0, len(e.Badges)),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if e.TicketPrice != nil {
		resp.TicketPrice = &PriceInput{Amount: e.TicketPrice.Amount, Currency: e.TicketPrice.Currency}
	}
	for _, r := range e.Registrations {
		resp.Registrations = append(resp.Registrations, RegistrationResponse{
			ID:       r.ID.String(),
			UserID:   r.UserID.String(),
			Quantity: r.Quantity,
			Status:   r.Status.String(),
		})
	}
	for _, w := range e.WaitingList {
		resp.WaitingList = append(resp.WaitingList, WaitlistEntryResponse{
			UserID:   w.UserID.String(),
			Position: w.Position,
			JoinedAt: w.JoinedAt,
		})
	}
	for _, p := range e.Passes {
		resp.Passes = append(resp.Passes, PassResponse{
			ID:        p.ID.String(),
			Name:      p.Name,
			Price:     PriceInput{Amount: p.Price.Amount, Currency: p.Price.Currency},
			Total:     p.Total,
			Available: p.Available,
			Reserved:  p.Reserved,
		})
	}
	for _, l := range e.SignUpLists {
		lr := SignUpListResponse{
			ID:          l.ID.String(),
			Category:    l.Category,
			Description: l.Description,
			Items:       append(make([]string, 0, len(l.Items)), l.Items...),
			Commitments: make([]CommitmentResponse, 0, len(l.Commitments)),
		}
		for _, c := range l.Commitments {
			lr.Commitments = append(lr.Commitments, CommitmentResponse{
				UserID:   c.UserID.String(),
				Item:     c.Item,
				Quantity: c.Quantity,
			})
		}
		resp.SignUpLists = append(resp.SignUpLists, lr)
	}
	for _, b := range e.Badges {
		resp.Badges = append(resp.Badges, BadgeResponse{
			BadgeID:    b.BadgeID.String(),
			AssignedAt: b.AssignedAt,
			ExpiresAt:  b.ExpiresAt,
		})
	}
	return resp
}

// CreatedResponse acknowledges resource creation.
type CreatedResponse struct {
	ID string `json:"id"`
}
