package approval

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradeops/backend/internal/domain/shared"
)

// SlotResult is the decision recorded on a single approval slot
type SlotResult string

const (
	SlotWaiting  SlotResult = "WAITING"
	SlotApproved SlotResult = "APPROVED"
	SlotRejected SlotResult = "REJECTED"
	SlotSkipped  SlotResult = "SKIPPED"
)

// IsDecided returns true once a slot carries a final result
func (r SlotResult) IsDecided() bool {
	return r != SlotWaiting
}

// ChainState is the aggregate state of an approval chain
type ChainState string

const (
	ChainInProgress ChainState = "IN_PROGRESS"
	ChainApproved   ChainState = "APPROVED"
	ChainRejected   ChainState = "REJECTED"
)

// Slot is a single approver's position in an ordered approval chain
type Slot struct {
	ID        uuid.UUID
	StepIndex int // 1-based position in the chain
	Approver  uuid.UUID
	Required  bool
	Result    SlotResult
	Comment   string
	DecidedAt *time.Time
}

// SlotSpec describes one approver when sealing a chain
type SlotSpec struct {
	Approver uuid.UUID
	Required bool
}

// Chain is a sealed, ordered list of approval slots. The slot list is fixed
// at creation; only decisions mutate it. Rejecting a required slot
// short-circuits the chain, leaving later slots WAITING as history.
type Chain struct {
	Slots       []Slot
	CurrentStep int
	State       ChainState
}

// NewChain seals an approval chain from the supplied approver list.
// Order and required flags are preserved.
func NewChain(specs []SlotSpec) (*Chain, error) {
	if len(specs) == 0 {
		return nil, shared.NewDomainError("EMPTY_CHAIN", "An approval chain needs at least one approver")
	}

	slots := make([]Slot, len(specs))
	for i, spec := range specs {
		if spec.Approver == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_APPROVER", "Approver cannot be empty")
		}
		slots[i] = Slot{
			ID:        uuid.New(),
			StepIndex: i + 1,
			Approver:  spec.Approver,
			Required:  spec.Required,
			Result:    SlotWaiting,
		}
	}

	return &Chain{
		Slots:       slots,
		CurrentStep: 1,
		State:       ChainInProgress,
	}, nil
}

// TotalSteps returns the number of slots sealed into the chain.
// It never changes after creation.
func (c *Chain) TotalSteps() int {
	return len(c.Slots)
}

// CurrentSlot returns the slot whose turn it is, or nil once the chain is done
func (c *Chain) CurrentSlot() *Slot {
	if c.State != ChainInProgress {
		return nil
	}
	for i := range c.Slots {
		if c.Slots[i].StepIndex == c.CurrentStep {
			return &c.Slots[i]
		}
	}
	return nil
}

// SlotByID returns the slot with the given ID, or nil
func (c *Chain) SlotByID(slotID uuid.UUID) *Slot {
	for i := range c.Slots {
		if c.Slots[i].ID == slotID {
			return &c.Slots[i]
		}
	}
	return nil
}

// Approve records an approval on the slot whose turn it is. Only the approver
// of the current slot may decide; anyone else gets NOT_YOUR_TURN. When no
// waiting required slot remains after the decision the chain becomes APPROVED.
func (c *Chain) Approve(slotID, caller uuid.UUID, comment string) error {
	slot, err := c.takeTurn(slotID, caller)
	if err != nil {
		return err
	}

	now := time.Now()
	slot.Result = SlotApproved
	slot.Comment = comment
	slot.DecidedAt = &now

	c.advance()
	return nil
}

// Reject records a rejection on the slot whose turn it is. Rejection of a
// required slot terminates the chain immediately; later slots stay WAITING.
// Rejection of a non-required slot merely advances the chain.
func (c *Chain) Reject(slotID, caller uuid.UUID, comment string) error {
	slot, err := c.takeTurn(slotID, caller)
	if err != nil {
		return err
	}

	now := time.Now()
	slot.Result = SlotRejected
	slot.Comment = comment
	slot.DecidedAt = &now

	if slot.Required {
		c.State = ChainRejected
		return nil
	}

	c.advance()
	return nil
}

// Skip passes over a non-required slot. Skipping a required slot fails with
// REQUIRED_SLOT. Authorization (administrator only) is enforced by the caller.
func (c *Chain) Skip(slotID uuid.UUID, comment string) error {
	if c.State != ChainInProgress {
		return shared.ErrAlreadyDecided
	}
	slot := c.SlotByID(slotID)
	if slot == nil {
		return shared.ErrNotFound
	}
	if slot.Result.IsDecided() {
		return shared.ErrAlreadyDecided
	}
	if slot.Required {
		return shared.ErrRequiredSlot
	}
	if slot.StepIndex != c.CurrentStep {
		return shared.ErrNotYourTurn
	}

	now := time.Now()
	slot.Result = SlotSkipped
	slot.Comment = comment
	slot.DecidedAt = &now

	c.advance()
	return nil
}

// takeTurn validates that the slot exists, is undecided, is the current step,
// and belongs to the caller
func (c *Chain) takeTurn(slotID, caller uuid.UUID) (*Slot, error) {
	if c.State != ChainInProgress {
		return nil, shared.ErrAlreadyDecided
	}
	slot := c.SlotByID(slotID)
	if slot == nil {
		return nil, shared.ErrNotFound
	}
	if slot.Result.IsDecided() {
		return nil, shared.ErrAlreadyDecided
	}
	if slot.StepIndex != c.CurrentStep || slot.Approver != caller {
		return nil, shared.ErrNotYourTurn
	}
	return slot, nil
}

// advance resolves the chain as APPROVED once no waiting required slot
// remains; otherwise it moves CurrentStep to the next waiting slot. Trailing
// non-required slots are left WAITING as history when the chain resolves.
func (c *Chain) advance() {
	if !c.waitingRequiredRemains() {
		c.State = ChainApproved
		return
	}
	for i := range c.Slots {
		if c.Slots[i].StepIndex > c.CurrentStep && c.Slots[i].Result == SlotWaiting {
			c.CurrentStep = c.Slots[i].StepIndex
			return
		}
	}
}

func (c *Chain) waitingRequiredRemains() bool {
	for i := range c.Slots {
		if c.Slots[i].Required && c.Slots[i].Result == SlotWaiting {
			return true
		}
	}
	return false
}

// ApprovedCount returns the number of slots decided APPROVED
func (c *Chain) ApprovedCount() int {
	count := 0
	for _, slot := range c.Slots {
		if slot.Result == SlotApproved {
			count++
		}
	}
	return count
}

// RequiredApproved reports whether every required slot is approved
func (c *Chain) RequiredApproved() bool {
	for _, slot := range c.Slots {
		if slot.Required && slot.Result != SlotApproved {
			return false
		}
	}
	return true
}

// PendingFor reports whether it is currently the given approver's turn
func (c *Chain) PendingFor(approver uuid.UUID) bool {
	slot := c.CurrentSlot()
	return slot != nil && slot.Approver == approver
}
