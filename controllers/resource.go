package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
)

type reader[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Filter(ctx context.Context, params map[string]string) ([]T, error)
}

type writer[T any] interface {
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, id string, patch map[string]any) (*T, error)
	Delete(ctx context.Context, id string) error
}

type crudStore[T any] interface {
	reader[T]
	writer[T]
}

type creator[T any] interface {
	model() (*T, error)
}

type patcher interface {
	patch() (map[string]any, error)
}

func bindCreate[T any, I creator[T]](c *gin.Context) (*T, error) {
	var in I
	if err := c.ShouldBindJSON(&in); err != nil {
		return nil, apperrors.FromBinding(err)
	}
	return in.model()
}

func bindPatch[I patcher](c *gin.Context) (map[string]any, error) {
	var in I
	if err := c.ShouldBindJSON(&in); err != nil {
		return nil, apperrors.FromBinding(err)
	}
	return in.patch()
}

// resource serves the uniform list/filter/get/create/update/delete routes of one entity.
type resource[T any] struct {
	read   reader[T]
	write  writer[T]
	name   string
	idOf   func(*T) string
	create func(*gin.Context) (*T, error)
	update func(*gin.Context) (map[string]any, error)
}

func (r *resource[T]) List(c *gin.Context) {
	rows, err := r.read.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (r *resource[T]) Filter(c *gin.Context) {
	params := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	rows, err := r.read.Filter(c.Request.Context(), params)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (r *resource[T]) Get(c *gin.Context) {
	v, err := r.read.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (r *resource[T]) Create(c *gin.Context) {
	v, err := r.create(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := r.write.Create(c.Request.Context(), v); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": r.name + " created", "id": r.idOf(v), "data": v})
}

func (r *resource[T]) Update(c *gin.Context) {
	p, err := r.update(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	v, err := r.write.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": r.name + " updated", "data": v})
}

func (r *resource[T]) Delete(c *gin.Context) {
	if err := r.write.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": r.name + " deleted"})
}

// set copies a supplied field into the patch.
func set[V any](p map[string]any, column string, v *V) {
	if v != nil {
		p[column] = *v
	}
}

// setNullable is set, with an empty string clearing the column.
func setNullable(p map[string]any, column string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		p[column] = nil
		return
	}
	p[column] = *v
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
