package models

import "encoding/json"

// UnmarshalJSON accepts both "id" and the Mongo-style "_id".
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(u)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// UnmarshalJSON accepts both "id" and the Mongo-style "_id".
func (s *Service) UnmarshalJSON(b []byte) error {
	type plain Service
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(s)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if s.ID == "" {
		s.ID = aux.MongoID
	}
	return nil
}
