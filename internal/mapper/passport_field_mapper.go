package mapper

import (
	"encoding/json"

	"idea-passport-be/internal/model"
	"idea-passport-be/pkg/passport/state"

	"gorm.io/datatypes"
)

// PassportFieldMapper converts between the stored row and the conversation
// state field. state.Field is the domain representation, so there is no
// separate entity type.
type PassportFieldMapper struct{}

func NewPassportFieldMapper() *PassportFieldMapper {
	return &PassportFieldMapper{}
}

func (m *PassportFieldMapper) ToEntity(f *model.PassportField) *state.Field {
	if f == nil {
		return nil
	}

	return &state.Field{
		Id:            f.Id,
		SessionId:     f.SessionId,
		Key:           f.FieldKey,
		Name:          f.Name,
		Icon:          f.Icon,
		Status:        state.FieldStatus(f.Status),
		Questions:     decodeStrings(f.Questions),
		Answers:       decodeStrings(f.Answers),
		Content:       f.Content,
		OrderIndex:    f.OrderIndex,
		QuestionCount: f.QuestionCount,
		DepthReason:   f.DepthReason,
	}
}

func (m *PassportFieldMapper) ToModel(f *state.Field) *model.PassportField {
	if f == nil {
		return nil
	}

	return &model.PassportField{
		Id:            f.Id,
		SessionId:     f.SessionId,
		FieldKey:      f.Key,
		Name:          f.Name,
		Icon:          f.Icon,
		Status:        string(f.Status),
		Questions:     encodeStrings(f.Questions),
		Answers:       encodeStrings(f.Answers),
		Content:       f.Content,
		OrderIndex:    f.OrderIndex,
		QuestionCount: f.QuestionCount,
		DepthReason:   f.DepthReason,
	}
}

func (m *PassportFieldMapper) ToEntities(fields []*model.PassportField) []state.Field {
	entities := make([]state.Field, len(fields))
	for i, f := range fields {
		entities[i] = *m.ToEntity(f)
	}
	return entities
}

func decodeStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func encodeStrings(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return raw
}
