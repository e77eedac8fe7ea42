package enum

// ProposalStatus represents the status of a solar proposal
type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
	ProposalStatusExpired  ProposalStatus = "expired"
)

// IsValid reports whether s is a known proposal status
func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusDraft, ProposalStatusSent, ProposalStatusAccepted, ProposalStatusRejected, ProposalStatusExpired:
		return true
	}
	return false
}

func (s ProposalStatus) String() string {
	return string(s)
}

// ProjectType classifies the site a proposal is for
type ProjectType string

const (
	ProjectTypeResidential ProjectType = "residential"
	ProjectTypeCommercial  ProjectType = "commercial"
	ProjectTypeIndustrial  ProjectType = "industrial"
)

func (t ProjectType) IsValid() bool {
	switch t {
	case ProjectTypeResidential, ProjectTypeCommercial, ProjectTypeIndustrial:
		return true
	}
	return false
}

// Label is the human readable form used on rendered documents
func (t ProjectType) Label() string {
	switch t {
	case ProjectTypeResidential:
		return "Residential"
	case ProjectTypeCommercial:
		return "Commercial"
	case ProjectTypeIndustrial:
		return "Industrial"
	}
	return string(t)
}

// RoofType is the mounting surface of the plant
type RoofType string

const (
	RoofTypeRCC           RoofType = "rcc"
	RoofTypeMetalSheet    RoofType = "metal_sheet"
	RoofTypeGroundMounted RoofType = "ground_mounted"
	RoofTypeOther         RoofType = "other"
)

func (t RoofType) IsValid() bool {
	switch t {
	case RoofTypeRCC, RoofTypeMetalSheet, RoofTypeGroundMounted, RoofTypeOther:
		return true
	}
	return false
}

func (t RoofType) Label() string {
	switch t {
	case RoofTypeRCC:
		return "RCC Roof"
	case RoofTypeMetalSheet:
		return "Metal Sheet Roof"
	case RoofTypeGroundMounted:
		return "Ground Mounted"
	case RoofTypeOther:
		return "Other"
	}
	return string(t)
}
