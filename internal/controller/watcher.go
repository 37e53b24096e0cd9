package controller

// Watched preference keys.
const (
	KeyAccelerometerRotation = "system:accelerometer_rotation"
	KeyLockscreenRotation    = "cmsystem:lockscreen_rotation"
	KeyLockscreenBlurEnabled = "cmsecure:lockscreen_blur_enabled"
)

// WatchedKeys lists the preference keys the controller reacts to.
func WatchedKeys() []string {
	return []string{KeyAccelerometerRotation, KeyLockscreenRotation, KeyLockscreenBlurEnabled}
}

// PrefDefault is the value assumed for an unset watched key.
func PrefDefault(key string) bool {
	switch key {
	case KeyAccelerometerRotation, KeyLockscreenBlurEnabled:
		return true
	default:
		return false
	}
}

// OnPreferenceChanged handles a change notification for key. Rotation keys
// recompute the rotation cache and reapply. The blur key only updates the
// blur cache and rechecks the overlay. Other keys are ignored.
func (c *Controller) OnPreferenceChanged(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch key {
	case KeyAccelerometerRotation, KeyLockscreenRotation:
		c.inputs.KeyguardScreenRotation = c.keyguardScreenRotation()
		c.log.Info("keyguard rotation preference changed", "key", key, "rotation", c.inputs.KeyguardScreenRotation)
		c.apply()
	case KeyLockscreenBlurEnabled:
		if c.blur == nil {
			return
		}
		c.inputs.KeyguardBlurEnabled = c.keyguardBlurEnabled()
		c.log.Info("keyguard blur preference changed", "enabled", c.inputs.KeyguardBlurEnabled)
		c.showKeyguardBlur()
	}
}

func (c *Controller) keyguardScreenRotation() bool {
	accelerometer := c.prefs.GetBool(KeyAccelerometerRotation, PrefDefault(KeyAccelerometerRotation))
	lockscreen := c.prefs.GetBool(KeyLockscreenRotation, PrefDefault(KeyLockscreenRotation))
	return c.res.RotationOverride || (c.res.LockscreenRotation && lockscreen && accelerometer)
}

func (c *Controller) keyguardBlurEnabled() bool {
	return c.prefs.GetBool(KeyLockscreenBlurEnabled, PrefDefault(KeyLockscreenBlurEnabled))
}
