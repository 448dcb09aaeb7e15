package api

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/recipe-notebook/backend/internal/imageset"
	"github.com/recipe-notebook/backend/internal/listing"
	"github.com/recipe-notebook/backend/internal/model"
)

// GenreRequest is the body for creating or renaming a genre.
type GenreRequest struct {
	Name string `json:"name" binding:"required"`
}

// PaginationResponse mirrors the pagination footer and button row of the
// list screens.
type PaginationResponse struct {
	Page        int   `json:"page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int   `json:"total_items"`
	StartIndex  int   `json:"start_index"`
	EndIndex    int   `json:"end_index"`
	PageButtons []int `json:"page_buttons"`
}

func paginationResponse(page listing.Page) PaginationResponse {
	return PaginationResponse{
		Page:        page.Number,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		StartIndex:  page.StartIndex,
		EndIndex:    page.EndIndex,
		PageButtons: listing.PageButtons(page.Number, page.TotalPages),
	}
}

// recipeFromForm reads the recipe fields of a multipart create/edit
// request. Absent optional fields come back as empty strings; an empty
// reference_url is stored as null.
func recipeFromForm(c *gin.Context) model.Recipe {
	recipe := model.Recipe{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Ingredients:  c.PostForm("ingredients"),
		Instructions: c.PostForm("instructions"),
		Genres:       model.JSONBStringArray(c.PostFormArray("genres")),
		Memo:         c.PostForm("memo"),
	}
	if ref := c.PostForm("reference_url"); ref != "" {
		recipe.ReferenceURL = &ref
	}
	return recipe
}

// attachedUploads reads the files of the "images" multipart field into
// pending uploads. Unreadable parts are skipped and reported by name.
func attachedUploads(c *gin.Context) (uploads []imageset.Upload, failed []string) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	for _, header := range form.File["images"] {
		data, err := readUpload(header)
		if err != nil {
			failed = append(failed, header.Filename)
			continue
		}
		uploads = append(uploads, imageset.Upload{Name: header.Filename, Data: data})
	}
	return uploads, failed
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	return io.ReadAll(file)
}
