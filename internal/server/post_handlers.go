package server

import (
	"fmt"

	"quill/internal/models"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetPosts lists published posts, 20 per page.
// GET /api/posts?page=N
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.postService.ListPublished(c.UserContext(), parsePage(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}

// GetPost shows a published post. Unpublished posts are reported as missing.
// GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// CreatePostForm tells an authenticated client which view to render.
// GET /api/posts/create
func (s *Server) CreatePostForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"view": "posts.create"})
}

// CreatePost stores a post owned by the caller.
// POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var fields validation.PostFields
	if err := parseBody(c, &fields); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), currentUserID(c), fields)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return redirectWithJSON(c, postLocation(post.ID), fiber.Map{
		"message": "Post created successfully.",
		"post":    post,
	})
}

// EditPost returns a post for editing when the caller owns it, in any state.
// GET /api/posts/:id/edit
func (s *Server) EditPost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetEditablePost(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"view": "posts.edit", "post": post})
}

// UpdatePost applies the supplied fields to a post the caller owns.
// PUT/PATCH /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	var fields validation.PostFields
	if err := parseBody(c, &fields); err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.UserContext(), currentUserID(c), id, fields)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return redirectWithJSON(c, postLocation(post.ID), fiber.Map{
		"message": "Post updated successfully.",
		"post":    post,
	})
}

// DeletePost soft-deletes a post the caller owns.
// DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return redirectWithJSON(c, "/api/posts", fiber.Map{
		"message": "Post deleted successfully.",
	})
}

func postLocation(id uint) string {
	return fmt.Sprintf("/api/posts/%d", id)
}
