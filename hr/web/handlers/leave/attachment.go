package leave

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"peoplebase.com/peoplebase/infrastructure/filesystem"
	"peoplebase.com/peoplebase/utils"
	web "peoplebase.com/peoplebase/web/common"
	"peoplebase.com/peoplebase/web/middlewares"
)

const attachmentPrefix = "leave-attachments/"

// UploadAttachment stores a supporting document (medical certificate etc.)
// and returns the key to put on the leave request.
func (ep *Endpoint) UploadAttachment(c *gin.Context) {
	if ep.bucket == "" {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse("Attachment bucket is not configured"))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s%s/%s/%s%s",
		attachmentPrefix,
		middlewares.UserID(c),
		utils.KolkataNow().Format("2006-01"),
		uuid.NewString(),
		strings.ToLower(path.Ext(header.Filename)))

	if err := filesystem.WriteFile(ep.bucket, key, c.Request.Context(), contentType, file); err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, web.NewSuccessResponse(gin.H{"key": key}))
}

func (ep *Endpoint) DownloadAttachment(c *gin.Context) {
	if ep.bucket == "" {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse("Attachment bucket is not configured"))
		return
	}

	key := c.Query("key")
	if !strings.HasPrefix(key, attachmentPrefix) {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("Attachment not found"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", path.Base(key)))
	if err := filesystem.ReadFile(ep.bucket, key, c.Request.Context(), c.Writer); err != nil {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("Attachment not found"))
		return
	}
}

// ListAttachments lists stored attachment keys, optionally narrowed to one
// employee's folder.
func (ep *Endpoint) ListAttachments(c *gin.Context) {
	if ep.bucket == "" {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse("Attachment bucket is not configured"))
		return
	}

	keys, err := filesystem.ListFiles(ep.bucket, attachmentPrefix, c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	if employeeID := c.Query("employeeId"); employeeID != "" {
		folder := attachmentPrefix + employeeID + "/"
		keys = utils.Filter(keys, func(key string) bool {
			return strings.HasPrefix(key, folder)
		})
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"keys": keys}))
}
