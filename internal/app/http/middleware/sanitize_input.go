package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// richTextFields may keep limited, safe HTML (post bodies); every other
// string field is stripped to plain text.
var richTextFields = map[string]bool{
	"content": true,
}

// SanitizeAndCleanInputMiddleware cleans all string fields in JSON input
// using bluemonday before binding sees them.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	strict := bluemonday.StrictPolicy()
	ugc := bluemonday.UGCPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		// multipart uploads and other non-JSON bodies pass through untouched
		if !strings.Contains(c.ContentType(), "application/json") {
			c.Next()
			return
		}

		var body map[string]interface{}
		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(buf) == 0 {
			c.Next()
			return
		}
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		for k, v := range body {
			str, ok := v.(string)
			if !ok {
				continue
			}
			if richTextFields[k] {
				body[k] = ugc.Sanitize(str)
			} else {
				body[k] = strict.Sanitize(str)
			}
		}

		newBody, _ := json.Marshal(body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}
