package mapper

import (
	"docchat-be/internal/entity"
	"docchat-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	return &entity.Document{
		Id:            d.Id,
		UserId:        d.UserId,
		Filename:      d.Filename,
		FileType:      d.FileType,
		FileSize:      d.FileSize,
		ExtractedText: d.ExtractedText,
		UploadedAt:    d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	return &model.Document{
		Id:            d.Id,
		UserId:        d.UserId,
		Filename:      d.Filename,
		FileType:      d.FileType,
		FileSize:      d.FileSize,
		ExtractedText: d.ExtractedText,
		CreatedAt:     d.UploadedAt,
	}
}
