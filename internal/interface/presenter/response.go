package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response は統一レスポンス構造を定義します
type Response struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// Meta はメタ情報を定義します
type Meta struct {
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// OK は成功レスポンスを返します
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{OK: true, Data: data})
}

// Created は作成成功レスポンスを返します
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{OK: true, Data: data})
}

// List は件数付きのリスト取得レスポンスを返します
func List(c echo.Context, data interface{}, count int) error {
	return c.JSON(http.StatusOK, Response{OK: true, Data: data, Meta: &Meta{Count: &count}})
}
