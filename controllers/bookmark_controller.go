package controllers

import (
	"net/http"
	"strconv"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type BookmarkController struct {
	Bookmarks *services.BookmarkService
}

func NewBookmarkController(b *services.BookmarkService) *BookmarkController {
	return &BookmarkController{Bookmarks: b}
}

func (bc *BookmarkController) Save(c *gin.Context) {
	uid := c.GetUint("userID")

	var req services.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RecipeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id required"})
		return
	}

	bm, err := bc.Bookmarks.Save(&uid, "", req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, bm)
}

func (bc *BookmarkController) List(c *gin.Context) {
	uid := c.GetUint("userID")
	rows, err := bc.Bookmarks.List(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (bc *BookmarkController) Remove(c *gin.Context) {
	uid := c.GetUint("userID")
	recipeID, err := strconv.ParseInt(c.Param("recipeId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	if err := bc.Bookmarks.Remove(uid, recipeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Reconcile adopts the device's guest bookmarks after login.
func (bc *BookmarkController) Reconcile(c *gin.Context) {
	uid := c.GetUint("userID")

	var body struct {
		DeviceKey string `json:"device_key"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.DeviceKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_key required"})
		return
	}

	adopted, err := bc.Bookmarks.Reconcile(body.DeviceKey, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"adopted": adopted})
}

// Guest endpoints: signed-out devices identify themselves with a header.

func (bc *BookmarkController) SaveGuest(c *gin.Context) {
	deviceKey := c.GetHeader("X-Device-Key")
	if deviceKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-Key header required"})
		return
	}

	var req services.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.RecipeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id required"})
		return
	}

	bm, err := bc.Bookmarks.Save(nil, deviceKey, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, bm)
}

func (bc *BookmarkController) ListGuest(c *gin.Context) {
	deviceKey := c.GetHeader("X-Device-Key")
	if deviceKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Device-Key header required"})
		return
	}
	rows, err := bc.Bookmarks.ListGuest(deviceKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
