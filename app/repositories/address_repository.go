package repositories

import (
	"github.com/aranya-labs/aranya/app/models"
	"github.com/aranya-labs/aranya/pkg/orm"
)

// AddressRepository handles saved addresses.
type AddressRepository struct{}

func NewAddressRepository() *AddressRepository {
	return &AddressRepository{}
}

// ForUser returns the user's addresses, default first.
func (r *AddressRepository) ForUser(userID uint) ([]models.Address, error) {
	var addrs []models.Address
	err := orm.DB().Model(&models.Address{}).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Get(&addrs)
	return addrs, err
}

// Find loads one address owned by the user.
func (r *AddressRepository) Find(userID, id uint) (models.Address, error) {
	var a models.Address
	err := orm.DB().Model(&models.Address{}).
		Where("id = ? AND user_id = ?", id, userID).First(&a)
	return a, err
}

// Create persists a new address.
func (r *AddressRepository) Create(a *models.Address) error {
	return orm.DB().Create(a)
}

// Update persists address changes.
func (r *AddressRepository) Update(a *models.Address) error {
	return orm.DB().Save(a)
}

// Delete removes an address owned by the user.
func (r *AddressRepository) Delete(userID, id uint) error {
	return orm.DB().Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{})
}

// SetDefault marks one address default and clears the flag from the
// user's others of the same kind.
func (r *AddressRepository) SetDefault(userID, id uint) error {
	a, err := r.Find(userID, id)
	if err != nil {
		return err
	}
	return orm.Transaction(func(tx *orm.Query) error {
		if err := tx.Model(&models.Address{}).
			Where("user_id = ? AND kind = ?", userID, a.Kind).
			Updates(map[string]interface{}{"is_default": false}); err != nil {
			return err
		}
		return tx.Model(&models.Address{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"is_default": true})
	})
}
