package models

import "time"

// Care relationship: who the recipient account books care for.
const (
	CareForSelf     = "self"
	CareForLovedOne = "loved_one"
)

// CareRecipient is the payer-side profile of a recipient account.
type CareRecipient struct {
	ID                   string    `bson:"id" json:"id"`
	ProfileID            string    `bson:"profile_id" json:"profileId"`
	CareFor              string    `bson:"care_for" json:"careFor"`
	LovedOneFirstName    string    `bson:"loved_one_first_name,omitempty" json:"lovedOneFirstName,omitempty"`
	LovedOneLastName     string    `bson:"loved_one_last_name,omitempty" json:"lovedOneLastName,omitempty"`
	LovedOneAge          int       `bson:"loved_one_age,omitempty" json:"lovedOneAge,omitempty"`
	LovedOneRelationship string    `bson:"loved_one_relationship,omitempty" json:"lovedOneRelationship,omitempty"`
	CareNeeds            []string  `bson:"care_needs,omitempty" json:"careNeeds,omitempty"`
	AdditionalNotes      string    `bson:"additional_notes,omitempty" json:"additionalNotes,omitempty"`
	CreatedAt            time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time `bson:"updated_at" json:"updatedAt"`

	Profile *Profile `bson:"profile,omitempty" json:"profile,omitempty"`
}
