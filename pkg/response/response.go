// Package response 提供统一的 HTTP 响应结构
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body 统一响应结构
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success 返回 200 成功响应
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// SuccessWithMessage 返回带说明的成功响应
func SuccessWithMessage(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Body{Success: true, Message: message, Data: data})
}

// Created 返回 201 创建成功响应
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Body{Success: true, Data: data})
}

// ErrorWithStatus 返回指定状态码的失败响应，detail 为机器可读错误标识
func ErrorWithStatus(c *gin.Context, status int, message string, detail string) {
	c.JSON(status, Body{Success: false, Message: message, Error: detail})
}
