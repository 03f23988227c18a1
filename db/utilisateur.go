package db

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/models"
)

const MinPasswordLength = 8

// PasswordColumn carries the plain password in an update patch; it is hashed before writing.
const PasswordColumn = "mot_de_passe"

type Utilisateurs struct {
	*Table[models.Utilisateur]
}

func newUtilisateurs(db *gorm.DB) *Utilisateurs {
	return &Utilisateurs{NewTable[models.Utilisateur](db, "utilisateur", "matricule", "matricule ASC", FilterSpec{
		"role":  {Column: "role", Match: MatchEqual, Validate: validateRole},
		"actif": {Column: "actif", Match: MatchBoolean},
	})}
}

func validateRole(s string) error {
	_, err := models.ParseRole(s)
	return err
}

// HashPassword bcrypt-hashes a plain password.
func HashPassword(plain string) (string, error) {
	if len(plain) < MinPasswordLength {
		return "", apperrors.Validation("password must be at least %d characters", MinPasswordLength)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt rejects passwords over 72 bytes
		return "", apperrors.Validation("password cannot be hashed").WithCause(err)
	}
	return string(h), nil
}

// Create hashes password into u and inserts the account. An empty role means consultant.
func (s *Utilisateurs) Create(ctx context.Context, u *models.Utilisateur, password string) error {
	if u.Role == "" {
		u.Role = models.RoleConsultant
	}
	if _, err := models.ParseRole(string(u.Role)); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.MotDePasse = hash
	return s.Table.Create(ctx, u)
}

// Update re-hashes a password present in the patch under PasswordColumn.
func (s *Utilisateurs) Update(ctx context.Context, id string, patch map[string]any) (*models.Utilisateur, error) {
	if raw, ok := patch["role"]; ok {
		role, _ := raw.(models.Role)
		if _, err := models.ParseRole(string(role)); err != nil {
			return nil, err
		}
	}
	if raw, ok := patch[PasswordColumn]; ok {
		plain, _ := raw.(string)
		hash, err := HashPassword(plain)
		if err != nil {
			return nil, err
		}
		patch[PasswordColumn] = hash
	}
	return s.Table.Update(ctx, id, patch)
}

// Authenticate checks credentials of an active account and stamps derniere_connexion.
// Unknown, inactive and wrong-password cases are indistinguishable to the caller.
func (s *Utilisateurs) Authenticate(ctx context.Context, matricule, password string) (*models.Utilisateur, error) {
	invalid := apperrors.Authentication("invalid credentials")

	u, err := s.Get(ctx, matricule)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if !u.Actif {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.MotDePasse), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, invalid
		}
		return nil, invalid.WithCause(err)
	}

	if err := s.db.WithContext(ctx).Model(&models.Utilisateur{}).
		Where("matricule = ?", matricule).
		Update("derniere_connexion", gorm.Expr("NOW()")).Error; err != nil {
		return nil, classify(err, s.entity, opWrite)
	}
	return u, nil
}

// TouchActivite stamps derniere_activite.
func (s *Utilisateurs) TouchActivite(ctx context.Context, matricule string) error {
	return classify(s.db.WithContext(ctx).Model(&models.Utilisateur{}).
		Where("matricule = ?", matricule).
		Update("derniere_activite", gorm.Expr("NOW()")).Error, s.entity, opWrite)
}

func (s *Utilisateurs) CountAdmins(ctx context.Context) (int64, error) {
	return s.Count(ctx, "role = ? AND actif = TRUE", models.RoleAdmin)
}
