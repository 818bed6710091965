package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"pesaswift/models"
	"pesaswift/utils"

	"github.com/gin-gonic/gin"
)

type BankRateController struct{}

func NewBankRateController() *BankRateController {
	return &BankRateController{}
}

type Sort struct {
	Direction    string `json:"direction"`
	NullHandling string `json:"nullHandling"`
	Ascending    bool   `json:"ascending"`
	Property     string `json:"property"`
	IgnoreCase   bool   `json:"ignoreCase"`
}

type Pageable struct {
	Offset     int    `json:"offset"`
	Sort       []Sort `json:"sort"`
	Paged      bool   `json:"paged"`
	PageNumber int    `json:"pageNumber"`
	PageSize   int    `json:"pageSize"`
	Unpaged    bool   `json:"unpaged"`
}

type ResponseByPagination struct {
	TotalPages       int               `json:"totalPages"`
	TotalElements    int64             `json:"totalElements"`
	First            bool              `json:"first"`
	Last             bool              `json:"last"`
	Size             int               `json:"size"`
	Content          []models.BankRate `json:"content"`
	Number           int               `json:"number"`
	Sort             []Sort            `json:"sort"`
	NumberOfElements int               `json:"numberOfElements"`
	Pageable         Pageable          `json:"pageable"`
	Empty            bool              `json:"empty"`
}

// GetRates godoc
// GET /rates/banks — paginated rate comparison across digital lenders.
func (bc *BankRateController) GetRates(c *gin.Context) {
	db := utils.GetDB()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	sortBy := c.DefaultQuery("sort", "bank_name")
	sortDir := c.DefaultQuery("direction", "asc")

	if page < 0 {
		page = 0
	}
	if size < 1 || size > 100 {
		size = 10
	}

	var totalElements int64
	db.Model(&models.BankRate{}).Count(&totalElements)

	totalPages := int((totalElements + int64(size) - 1) / int64(size))
	offset := page * size

	if totalElements == 0 {
		c.JSON(http.StatusOK, ResponseByPagination{
			TotalPages:    0,
			TotalElements: 0,
			First:         true,
			Last:          true,
			Size:          size,
			Content:       []models.BankRate{},
			Number:        page,
			Sort:          []Sort{},
			Pageable: Pageable{
				Offset:     offset,
				Sort:       []Sort{},
				Paged:      true,
				PageNumber: page,
				PageSize:   size,
			},
			Empty: true,
		})
		return
	}

	sortDirection := "ASC"
	if strings.ToLower(sortDir) == "desc" {
		sortDirection = "DESC"
	}

	allowedSortFields := map[string]string{
		"bank_name":  "bank_name",
		"daily_rate": "daily_rate",
		"max_amount": "max_amount",
		"term":       "term",
		"created_at": "created_at",
	}
	sortField, exists := allowedSortFields[sortBy]
	if !exists {
		sortField = "bank_name"
	}

	var rates []models.BankRate
	query := db.Model(&models.BankRate{}).Order(sortField + " " + sortDirection)
	query = query.Offset(offset).Limit(size)

	if err := query.Find(&rates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rates"})
		return
	}

	sortObj := Sort{
		Direction:    strings.ToUpper(sortDir),
		NullHandling: "NATIVE",
		Ascending:    strings.ToLower(sortDir) == "asc",
		Property:     sortBy,
		IgnoreCase:   false,
	}

	c.JSON(http.StatusOK, ResponseByPagination{
		TotalPages:       totalPages,
		TotalElements:    totalElements,
		First:            page == 0,
		Last:             page >= totalPages-1,
		Size:             size,
		Content:          rates,
		Number:           page,
		Sort:             []Sort{sortObj},
		NumberOfElements: len(rates),
		Pageable: Pageable{
			Offset:     offset,
			Sort:       []Sort{sortObj},
			Paged:      true,
			PageNumber: page,
			PageSize:   size,
		},
		Empty: len(rates) == 0,
	})
}
