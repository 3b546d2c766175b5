package response

import "github.com/gin-gonic/gin"

// Envelope is the uniform wrapper for every API outcome. All four keys are
// always present; message serializes as null when there is none.
type Envelope struct {
	Success bool        `json:"success"`
	Message *string     `json:"message"`
	Data    interface{} `json:"data"`
	Error   interface{} `json:"error"`
}

func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success: true,
		Message: optional(message),
		Data:    data,
	})
}

func Error(c *gin.Context, status int, message string, errs interface{}) {
	c.JSON(status, Envelope{
		Success: false,
		Message: optional(message),
		Error:   errs,
	})
}

type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type Page struct {
	Items interface{} `json:"items"`
	Meta  PageMeta    `json:"meta"`
}

func NewPage(items interface{}, page, perPage int, total int64) Page {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return Page{
		Items: items,
		Meta: PageMeta{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

func optional(message string) *string {
	if message == "" {
		return nil
	}
	return &message
}
