package server

import (
	"strconv"
	"time"

	"forkful/internal/models"
	"forkful/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// viewer is the logged-in browser user, threaded into every page render.
type viewer struct {
	ID       uint
	Username string
}

// webViewer reads the session cookie without enforcing it.
func (s *Server) webViewer(c *fiber.Ctx) viewer {
	tokenString := c.Cookies(sessionCookie)
	if tokenString == "" {
		return viewer{}
	}
	userID, err := s.parseUserToken(tokenString)
	if err != nil {
		return viewer{}
	}

	// The username claim is cached in the token; fall back to empty on
	// malformed claims rather than hitting the database per page.
	username := ""
	if token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{}); err == nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			username, _ = claims["username"].(string)
		}
	}
	return viewer{ID: userID, Username: username}
}

// webAuthRequired redirects anonymous browsers to the login page.
func (s *Server) webAuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := s.webViewer(c)
		if v.ID == 0 {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		c.Locals("userID", v.ID)
		c.Locals("viewer", v)
		return c.Next()
	}
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// renderForbidden shows the 403 page for ownership violations.
func (s *Server) renderForbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).Render("forbidden", fiber.Map{
		"Viewer": s.webViewer(c),
	}, "layouts/main")
}

// setupWebRoutes registers the server-rendered pages. Static paths are
// registered before the generic /:id so they are matched first.
func (s *Server) setupWebRoutes(app *fiber.App) {
	app.Get("/", s.WebIndex)
	app.Get("/register", s.WebRegisterForm)
	app.Post("/register", s.WebRegister)
	app.Get("/login", s.WebLoginForm)
	app.Post("/login", s.WebLogin)
	app.Get("/logout", s.WebLogout)

	app.Get("/add", s.webAuthRequired(), s.WebAddItemForm)
	app.Post("/add", s.webAuthRequired(), s.WebAddItem)
	app.Get("/update/:id<int>", s.webAuthRequired(), s.WebUpdateItemForm)
	app.Post("/update/:id<int>", s.webAuthRequired(), s.WebUpdateItem)
	app.Get("/delete/:id<int>", s.webAuthRequired(), s.WebDeleteItemForm)
	app.Post("/delete/:id<int>", s.webAuthRequired(), s.WebDeleteItem)
	app.Post("/item/:itemId<int>/comment/:commentId<int>/delete", s.webAuthRequired(), s.WebDeleteComment)

	app.Get("/:id<int>", s.WebItemDetail)
	app.Post("/:id<int>", s.webAuthRequired(), s.WebAddComment)
}

// WebIndex renders the recipe listing with search and pagination.
func (s *Server) WebIndex(c *fiber.Ctx) error {
	query := c.Query("q")
	page := parsePage(c)

	itemPage, err := s.itemService.ListItems(c.Context(), query, page)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Render("index", fiber.Map{
		"Viewer": s.webViewer(c),
		"Page":   itemPage,
		"Query":  query,
	}, "layouts/main")
}

// WebItemDetail renders a single recipe. Every render counts a view.
func (s *Server) WebItemDetail(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.itemService.GetItemDetail(c.Context(), id)
	if err != nil {
		if mapServiceError(err) == fiber.StatusNotFound {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{
				"Viewer": s.webViewer(c),
			}, "layouts/main")
		}
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	v := s.webViewer(c)
	return c.Render("detail", fiber.Map{
		"Viewer":  v,
		"Item":    item,
		"IsOwner": v.ID != 0 && v.ID == item.UserID,
	}, "layouts/main")
}

// WebAddComment handles the comment form on the detail page. Validation
// failures re-render the detail view with the message inline.
func (s *Server) WebAddComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	text := c.FormValue("text")
	_, err = s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID: currentUserID(c),
		ItemID: id,
		Text:   text,
	})
	if err != nil {
		if mapServiceError(err) == fiber.StatusBadRequest {
			return s.renderDetailWithCommentError(c, id, err.Error(), text)
		}
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Redirect(c.Path(), fiber.StatusSeeOther)
}

// renderDetailWithCommentError re-renders the detail page after a failed
// comment submission. It loads the item without the view-count side
// effect: a rejected form post is not a detail read.
func (s *Server) renderDetailWithCommentError(c *fiber.Ctx, id uint, msg, text string) error {
	item, err := s.itemService.GetItem(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	comments, err := s.commentRepo.ListByItem(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	item.Comments = make([]models.Comment, 0, len(comments))
	for _, comment := range comments {
		item.Comments = append(item.Comments, *comment)
	}

	v := s.webViewer(c)
	return c.Status(fiber.StatusBadRequest).Render("detail", fiber.Map{
		"Viewer":       v,
		"Item":         item,
		"IsOwner":      v.ID != 0 && v.ID == item.UserID,
		"CommentError": msg,
		"CommentText":  text,
	}, "layouts/main")
}

// WebDeleteComment removes a comment from the detail page. The comment
// must actually belong to the recipe in the URL.
func (s *Server) WebDeleteComment(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.Context(), commentID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if comment.ItemID != itemID {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Comment", commentID))
	}

	if err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
	}); err != nil {
		if mapServiceError(err) == fiber.StatusForbidden {
			return s.renderForbidden(c)
		}
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Redirect(itemPath(itemID), fiber.StatusSeeOther)
}

// WebAddItemForm renders the create form.
func (s *Server) WebAddItemForm(c *fiber.Ctx) error {
	return c.Render("item_form", fiber.Map{
		"Viewer": s.webViewer(c),
		"Title":  "Add recipe",
		"Action": "/add",
	}, "layouts/main")
}

// WebAddItem handles the create form submission.
func (s *Server) WebAddItem(c *fiber.Ctx) error {
	item, err := s.itemService.CreateItem(c.Context(), service.CreateItemInput{
		UserID:      currentUserID(c),
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Image:       c.FormValue("image"),
		CookingTime: c.FormValue("cooking_time"),
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).Render("item_form", fiber.Map{
			"Viewer":      s.webViewer(c),
			"Title":       "Add recipe",
			"Action":      "/add",
			"Error":       err.Error(),
			"Name":        c.FormValue("name"),
			"Description": c.FormValue("description"),
			"Image":       c.FormValue("image"),
			"CookingTime": c.FormValue("cooking_time"),
		}, "layouts/main")
	}
	return c.Redirect(itemPath(item.ID), fiber.StatusSeeOther)
}

// WebUpdateItemForm renders the edit form, owners only.
func (s *Server) WebUpdateItemForm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.itemService.GetItem(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if item.UserID != currentUserID(c) {
		return s.renderForbidden(c)
	}

	return c.Render("item_form", fiber.Map{
		"Viewer":      s.webViewer(c),
		"Title":       "Update recipe",
		"Action":      "/update/" + c.Params("id"),
		"Name":        item.Name,
		"Description": item.Description,
		"Image":       item.Image,
		"CookingTime": item.CookingTime.String(),
	}, "layouts/main")
}

// WebUpdateItem handles the edit form submission.
func (s *Server) WebUpdateItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	name := c.FormValue("name")
	description := c.FormValue("description")
	image := c.FormValue("image")
	cookingTime := c.FormValue("cooking_time")

	item, err := s.itemService.UpdateItem(c.Context(), service.UpdateItemInput{
		UserID:      currentUserID(c),
		ItemID:      id,
		Name:        &name,
		Description: &description,
		Image:       &image,
		CookingTime: &cookingTime,
	})
	if err != nil {
		if mapServiceError(err) == fiber.StatusForbidden {
			return s.renderForbidden(c)
		}
		return c.Status(fiber.StatusBadRequest).Render("item_form", fiber.Map{
			"Viewer":      s.webViewer(c),
			"Title":       "Update recipe",
			"Action":      "/update/" + c.Params("id"),
			"Error":       err.Error(),
			"Name":        name,
			"Description": description,
			"Image":       image,
			"CookingTime": cookingTime,
		}, "layouts/main")
	}
	return c.Redirect(itemPath(item.ID), fiber.StatusSeeOther)
}

// WebDeleteItemForm renders the delete confirmation page, owners only.
func (s *Server) WebDeleteItemForm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.itemService.GetItem(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if item.UserID != currentUserID(c) {
		return s.renderForbidden(c)
	}

	return c.Render("item_delete", fiber.Map{
		"Viewer": s.webViewer(c),
		"Item":   item,
	}, "layouts/main")
}

// WebDeleteItem handles the delete confirmation submission.
func (s *Server) WebDeleteItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.itemService.DeleteItem(c.Context(), service.DeleteItemInput{
		UserID: currentUserID(c),
		ItemID: id,
	}); err != nil {
		if mapServiceError(err) == fiber.StatusForbidden {
			return s.renderForbidden(c)
		}
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// WebRegisterForm renders the signup page.
func (s *Server) WebRegisterForm(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{
		"Viewer": s.webViewer(c),
	}, "layouts/main")
}

// WebRegister handles the signup form: username, email, password1,
// password2. On success the browser is logged in and sent home.
func (s *Server) WebRegister(c *fiber.Ctx) error {
	renderError := func(msg string) error {
		return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{
			"Viewer":   s.webViewer(c),
			"Error":    msg,
			"Username": c.FormValue("username"),
			"Email":    c.FormValue("email"),
		}, "layouts/main")
	}

	_, token, err := s.registerUser(c,
		c.FormValue("username"),
		c.FormValue("email"),
		c.FormValue("password1"),
		c.FormValue("password2"),
	)
	if err != nil {
		return renderError(err.Error())
	}

	s.setSessionCookie(c, token)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// WebLoginForm renders the login page.
func (s *Server) WebLoginForm(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Viewer": s.webViewer(c),
	}, "layouts/main")
}

// WebLogin handles the login form.
func (s *Server) WebLogin(c *fiber.Ctx) error {
	_, token, err := s.loginUser(c, c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Viewer":   s.webViewer(c),
			"Error":    "Invalid username or password",
			"Username": c.FormValue("username"),
		}, "layouts/main")
	}

	s.setSessionCookie(c, token)
	return c.Redirect("/", fiber.StatusSeeOther)
}

// WebLogout clears the session and sends the browser home.
func (s *Server) WebLogout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func itemPath(id uint) string {
	return "/" + strconv.FormatUint(uint64(id), 10)
}
