package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> menambahkan meja baru (admin/staff)
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber int    `json:"number" binding:"required,gt=0"`
		Capacity    int    `json:"capacity" binding:"required,gt=0"`
		Location    string `json:"location"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Table
	err := tc.DB.Where("table_number = ?", req.TableNumber).First(&existing).Error
	if err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("table number already exists"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondDBError(c, err, "table not found")
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Location:    req.Location,
		IsAvailable: true,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}

	utils.InfoLogger.Printf("New table created: number=%d capacity=%d", table.TableNumber, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan seluruh meja
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number").Find(&tables).Error; err != nil {
		utils.RespondDBError(c, err, "tables not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> partial update; hanya field yang dikirim yang berubah
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID := c.Param("table_id")

	var req struct {
		TableNumber *int    `json:"number"`
		Capacity    *int    `json:"capacity"`
		Location    *string `json:"location"`
		IsAvailable *bool   `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber == nil && req.Capacity == nil && req.Location == nil && req.IsAvailable == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no fields to update"))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}

	if req.TableNumber != nil {
		if *req.TableNumber <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("table number must be positive"))
			return
		}
		var dup models.Table
		err := tc.DB.Where("table_number = ? AND id != ?", *req.TableNumber, table.ID).First(&dup).Error
		if err == nil {
			utils.RespondError(c, http.StatusConflict, errors.New("table number already exists"))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondDBError(c, err, "table not found")
			return
		}
		table.TableNumber = *req.TableNumber
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("capacity must be positive"))
			return
		}
		table.Capacity = *req.Capacity
	}
	if req.Location != nil {
		table.Location = *req.Location
	}
	if req.IsAvailable != nil {
		table.IsAvailable = *req.IsAvailable
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}

	utils.InfoLogger.Printf("Table %d updated", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table updated successfully", table)
}

// DeleteTable -> menghapus meja (admin saja)
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondDBError(c, err, "table not found")
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": table.ID,
	})
}
